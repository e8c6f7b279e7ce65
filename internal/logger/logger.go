// Package logger cấu hình hệ thống log của server: logger chính (app) và
// logger audit ghi các hành động người dùng (signup/login, subscribe,
// thao tác video). Ghi file qua lumberjack để tự rotate, ghi bất đồng bộ
// qua AsyncHook để không block request handling.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Tên các logger trong hệ thống
const (
	LoggerApp   = "app"
	LoggerAudit = "audit"
)

// LogConfig cấu hình logging
type LogConfig struct {
	Level      string // debug | info | warn | error
	Format     string // json | text
	Output     string // file | stdout | both
	LogPath    string // thư mục chứa log, tương đối so với root của project
	AppFile    string // file log chính của server
	AuditFile  string // file log audit
	MaxSize    int    // dung lượng tối đa mỗi file log (MB) trước khi rotate
	MaxBackups int    // số file rotate giữ lại
	MaxAge     int    // số ngày giữ file rotate
	Compress   bool   // nén file rotate cũ
}

// DefaultConfig trả về cấu hình log mặc định của server
func DefaultConfig() *LogConfig {
	return &LogConfig{
		Level:      "info",
		Format:     "json",
		Output:     "both",
		LogPath:    "logs",
		AppFile:    "bharattube.log",
		AuditFile:  "bharattube_audit.log",
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}
}

var (
	loggers   = make(map[string]*logrus.Logger)
	loggersMu sync.Mutex

	config *LogConfig

	// rootDir là thư mục gốc của project, dùng làm mốc cho LogPath tương đối
	rootDir string
)

// Init khởi tạo hệ thống logging. cfg nil thì dùng DefaultConfig.
func Init(cfg *LogConfig) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	config = cfg

	if err := initRootDir(); err != nil {
		return fmt.Errorf("failed to initialize root directory: %w", err)
	}

	if err := os.MkdirAll(logPath(), 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	return nil
}

// initRootDir xác định thư mục gốc của project: ưu tiên env LOG_ROOT_DIR,
// sau đó đi lên từ working directory tìm thư mục chứa config/ hoặc logs/
// (cùng cách tìm với config.getEnvPath để hai bên luôn trỏ về một chỗ).
func initRootDir() error {
	if rootDir != "" {
		return nil
	}

	if envRootDir := os.Getenv("LOG_ROOT_DIR"); envRootDir != "" {
		if resolved, err := filepath.EvalSymlinks(envRootDir); err == nil {
			rootDir = resolved
		} else {
			rootDir = envRootDir
		}
		return nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("could not get working directory: %v", err)
	}

	currentDir := wd
	for {
		if _, err := os.Stat(filepath.Join(currentDir, "config")); err == nil {
			rootDir = currentDir
			return nil
		}
		if _, err := os.Stat(filepath.Join(currentDir, "logs")); err == nil {
			rootDir = currentDir
			return nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	// Không tìm thấy mốc nào: dùng working directory
	rootDir = wd
	return nil
}

func logPath() string {
	if filepath.IsAbs(config.LogPath) {
		return config.LogPath
	}
	return filepath.Join(rootDir, config.LogPath)
}

func logFilePath(name string) string {
	var filename string
	switch name {
	case LoggerApp:
		filename = config.AppFile
	case LoggerAudit:
		filename = config.AuditFile
	default:
		filename = fmt.Sprintf("%s.log", name)
	}
	return filepath.Join(logPath(), filename)
}

// GetLogger trả về logger theo tên, tạo mới nếu chưa có.
func GetLogger(name string) *logrus.Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	// Chưa init: init với config mặc định
	if config == nil {
		if err := Init(nil); err != nil {
			panic(fmt.Sprintf("Failed to initialize logger: %v", err))
		}
	}

	if logger, ok := loggers[name]; ok {
		return logger
	}

	logger := newLogger(name)
	loggers[name] = logger
	return logger
}

// newLogger tạo một logger với formatter, rotation và async hook theo config.
func newLogger(name string) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if config.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	}

	var writers []io.Writer
	if config.Output == "file" || config.Output == "both" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   logFilePath(name),
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		})
	}
	if config.Output == "stdout" || config.Output == "both" {
		writers = append(writers, os.Stdout)
	}

	// Ghi qua async hook để file I/O chậm không block request handling.
	// Output của logger bị discard: hook là đường ghi duy nhất, tránh ghi đúp.
	if len(writers) > 0 {
		logger.AddHook(NewAsyncHook(writers, 1000))
		logger.SetOutput(io.Discard)
	}

	logger.WithFields(logrus.Fields{
		"log_file": logFilePath(name),
		"level":    logger.GetLevel().String(),
		"channel":  name,
	}).Info("Logger initialized")

	return logger
}

// GetAppLogger trả về logger chính của server
func GetAppLogger() *logrus.Logger {
	return GetLogger(LoggerApp)
}

// GetAuditLogger trả về logger ghi các hành động audit của người dùng
func GetAuditLogger() *logrus.Logger {
	return GetLogger(LoggerAudit)
}

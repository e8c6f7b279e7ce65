package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestError_Is(t *testing.T) {
	// errors.Is phải khớp sentinel kể cả khi error được wrap
	wrapped := fmt.Errorf("lookup user: %w", ErrNotFound)
	assert.True(t, errors.Is(wrapped, ErrNotFound))

	// Khác code hoặc khác message thì không khớp
	assert.False(t, errors.Is(ErrNotFound, ErrDuplicate))
	assert.False(t, errors.Is(ErrTokenInvalid, ErrTokenExpired))
}

func TestConvertMongoError_Nil(t *testing.T) {
	assert.Nil(t, ConvertMongoError(nil))
}

func TestConvertMongoError_NoDocuments(t *testing.T) {
	err := ConvertMongoError(mongo.ErrNoDocuments)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestConvertMongoError_KeepsNotFound(t *testing.T) {
	// ErrNotFound đã convert rồi thì giữ nguyên, không convert tiếp
	err := ConvertMongoError(ErrNotFound)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestConvertMongoError_DuplicateKey(t *testing.T) {
	// Lỗi vi phạm unique index (code 11000) phải map thành ErrMongoDuplicate (409)
	dupErr := mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}},
	}

	err := ConvertMongoError(dupErr)
	assert.True(t, errors.Is(err, ErrMongoDuplicate), "lỗi duplicate key phải thành ErrMongoDuplicate, nhận được: %v", err)

	var appErr *Error
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, StatusConflict, appErr.StatusCode)
	}
}

func TestConvertMongoError_Unknown(t *testing.T) {
	err := ConvertMongoError(errors.New("lỗi lạ"))

	var appErr *Error
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, StatusInternalServerError, appErr.StatusCode)
		assert.Equal(t, ErrCodeDatabase.Code, appErr.Code.Code)
	}
}

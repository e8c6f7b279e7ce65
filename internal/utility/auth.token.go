package utility

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/PragyeNawani/bharattube/internal/common"
)

// JwtClaims chứa data được mã hóa trong JWT token.
type JwtClaims struct {
	UserID       string `json:"userId"`
	Time         string `json:"time"`
	RandomNumber string `json:"randomNumber"`
	jwt.StandardClaims
}

// CreateToken tạo JWT token (HS256) cho user với thời hạn cho trước.
// @params - secret ký token, id của user, thời hạn token
// @returns - chuỗi token đã ký và lỗi nếu có
func CreateToken(secret string, userID string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := JwtClaims{
		UserID:       userID,
		Time:         fmt.Sprintf("%d", now.UnixMilli()),
		RandomNumber: fmt.Sprintf("%d", rand.Int63()),
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(expiry).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken xác thực chữ ký và thời hạn của JWT token, trả về claims.
// Token hết hạn trả về common.ErrTokenExpired, token sai trả về common.ErrTokenInvalid.
func ParseToken(secret string, tokenString string) (*JwtClaims, error) {
	claims := &JwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok {
			if ve.Errors&jwt.ValidationErrorExpired != 0 {
				return nil, common.ErrTokenExpired
			}
		}
		return nil, common.ErrTokenInvalid
	}
	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrTokenInvalid
	}
	return claims, nil
}

package utility

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/PragyeNawani/bharattube/internal/common"
)

const testSecret = "test-secret-key"

func TestCreateAndParseToken(t *testing.T) {
	userID := "64f1a2b3c4d5e6f7a8b9c0d1"

	token, err := CreateToken(testSecret, userID, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseToken(testSecret, token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := CreateToken(testSecret, "64f1a2b3c4d5e6f7a8b9c0d1", time.Hour)
	assert.NoError(t, err)

	claims, err := ParseToken("secret-khac", token)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, common.ErrTokenInvalid), "token ký sai secret phải trả về ErrTokenInvalid, nhận được: %v", err)
}

func TestParseToken_Expired(t *testing.T) {
	// Token hết hạn từ 1 giờ trước
	token, err := CreateToken(testSecret, "64f1a2b3c4d5e6f7a8b9c0d1", -time.Hour)
	assert.NoError(t, err)

	claims, err := ParseToken(testSecret, token)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, common.ErrTokenExpired), "token hết hạn phải trả về ErrTokenExpired, nhận được: %v", err)
}

func TestParseToken_Garbage(t *testing.T) {
	claims, err := ParseToken(testSecret, "không-phải-jwt")
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, common.ErrTokenInvalid))
}

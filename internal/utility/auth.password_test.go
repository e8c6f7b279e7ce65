package utility

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("MatKhau@123")
	assert.NoError(t, err)
	assert.NotEqual(t, "MatKhau@123", hash, "hash không được chứa plaintext")

	assert.True(t, CheckPassword(hash, "MatKhau@123"))
	assert.False(t, CheckPassword(hash, "MatKhau@124"))
}

func TestHashPassword_DifferentSalts(t *testing.T) {
	// bcrypt tự sinh salt: hai lần hash cùng một mật khẩu phải khác nhau
	h1, err := HashPassword("MatKhau@123")
	assert.NoError(t, err)
	h2, err := HashPassword("MatKhau@123")
	assert.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

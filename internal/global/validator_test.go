package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signupForm struct {
	Username string `validate:"required,min=3,max=64,no_xss"`
	Password string `validate:"required,strong_password"`
}

func TestValidator_StrongPassword(t *testing.T) {
	InitValidator()

	cases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"đủ 3 nhóm ký tự", "Abcdef12", true},
		{"có ký tự đặc biệt", "abcdef1!", true},
		{"quá ngắn", "Ab1!", false},
		{"chỉ chữ thường", "abcdefgh", false},
		{"chữ thường và số", "abcdef12", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate.Struct(signupForm{Username: "pragye", Password: tc.password})
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidator_NoXSS(t *testing.T) {
	InitValidator()

	err := Validate.Struct(signupForm{Username: "<script>alert(1)</script>", Password: "Abcdef12"})
	assert.Error(t, err, "username chứa script tag phải bị chặn")

	err = Validate.Struct(signupForm{Username: "music_india", Password: "Abcdef12"})
	assert.NoError(t, err)
}

package util

import (
	"os"
	"testing"

	"github.com/Kim-Changgyu/ShoeKream/config"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.TokenTTLHours = 24
	os.Exit(m.Run())
}

// TestGenerateAndValidateToken 令牌签发后可验证并还原身份
func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(42, "ROLE_USER")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	memberID, authority, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), memberID)
	assert.Equal(t, "ROLE_USER", authority)
}

// TestValidateExpiredToken 过期令牌验证失败
func TestValidateExpiredToken(t *testing.T) {
	config.AppConfig.TokenTTLHours = -1
	defer func() { config.AppConfig.TokenTTLHours = 24 }()

	token, err := GenerateToken(42, "ROLE_USER")
	assert.NoError(t, err)

	_, _, err = ValidateToken(token)
	assert.Error(t, err)
}

// TestValidateTamperedToken 签名密钥不匹配时验证失败
func TestValidateTamperedToken(t *testing.T) {
	token, err := GenerateToken(42, "ROLE_USER")
	assert.NoError(t, err)

	config.AppConfig.JWTSecret = "another-secret"
	defer func() { config.AppConfig.JWTSecret = "test-secret" }()

	_, _, err = ValidateToken(token)
	assert.Error(t, err)
}

// TestValidateEmptyToken 空令牌直接拒绝
func TestValidateEmptyToken(t *testing.T) {
	_, _, err := ValidateToken("")
	assert.Error(t, err)
}

package util

import (
	"errors"
	"time"

	"github.com/Kim-Changgyu/ShoeKream/config"
	"github.com/dgrijalva/jwt-go"
)

// GenerateToken 生成携带会员ID和权限的签名令牌
func GenerateToken(memberID int64, authority string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"member_id": memberID,
		"authority": authority,
		"exp":       time.Now().Add(time.Hour * time.Duration(config.AppConfig.TokenTTLHours)).Unix(),
	})

	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ValidateToken 校验令牌并返回会员ID和权限
func ValidateToken(tokenString string) (int64, string, error) {
	if tokenString == "" {
		return 0, "", errors.New("令牌为空")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTSecret), nil
	})

	if err != nil {
		return 0, "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		memberID, ok := claims["member_id"].(float64)
		if !ok {
			return 0, "", errors.New("无效的会员ID")
		}
		authority, _ := claims["authority"].(string)
		return int64(memberID), authority, nil
	}

	return 0, "", errors.New("无效的令牌")
}

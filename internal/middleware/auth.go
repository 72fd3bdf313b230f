package middleware

import (
	"github.com/Kim-Changgyu/ShoeKream/config"
	"github.com/Kim-Changgyu/ShoeKream/internal/errors"
	"github.com/Kim-Changgyu/ShoeKream/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware 从Cookie中读取签名令牌并验证，
// 验证通过后将会员身份写入请求上下文，由处理器显式传递给服务层
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(config.AppConfig.AccessTokenCookie)
		if err != nil || tokenString == "" {
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "需要认证"))
			c.Abort()
			return
		}

		memberID, authority, err := util.ValidateToken(tokenString)
		if err != nil {
			util.Logger.Warn("令牌验证失败",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path))
			errors.HandleError(c, errors.Wrap(errors.ErrInvalidToken, "无效或过期的令牌", err))
			c.Abort()
			return
		}

		c.Set("member_id", memberID)
		c.Set("authority", authority)
		c.Next()
	}
}

package member

import (
	"net/http"
	"unicode"

	"github.com/Kim-Changgyu/ShoeKream/internal/errors"
	"github.com/Kim-Changgyu/ShoeKream/internal/model"
	"github.com/Kim-Changgyu/ShoeKream/internal/service"
	"github.com/Kim-Changgyu/ShoeKream/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler 处理与认证相关的HTTP请求
type AuthHandler struct {
	memberService service.MemberServiceInterface
	auth          service.AuthServiceInterface
}

// NewAuthHandler 创建一个新的 AuthHandler 实例
func NewAuthHandler(memberService service.MemberServiceInterface, auth service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{memberService, auth}
}

// Register 处理会员注册请求
func (h *AuthHandler) Register(c *gin.Context) {
	var registerData struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Phone    string `json:"phone" binding:"required,phone"`
		Password string `json:"password" binding:"required"`
		IsMale   bool   `json:"is_male"`
	}

	if err := c.ShouldBindJSON(&registerData); err != nil {
		util.Logger.Warn("注册失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	if !isPasswordStrong(registerData.Password) {
		errors.HandleError(c, errors.New(errors.ErrWeakPassword, "密码强度不足"))
		return
	}

	member := &model.Member{
		Name:         registerData.Name,
		Email:        registerData.Email,
		PasswordHash: registerData.Password,
		Phone:        registerData.Phone,
		IsMale:       registerData.IsMale,
	}

	if err := h.memberService.Register(member); err != nil {
		if errors.Code(err) == errors.ErrMemberExists {
			util.Logger.Warn("注册失败，邮箱已存在", zap.String("email", member.Email))
			errors.HandleError(c, err)
			return
		}
		util.Logger.Error("注册失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	errors.HandleCreated(c, gin.H{
		"id": member.ID,
	}, "注册成功")
}

// Login 处理会员登录请求，成功时通过Cookie下发签名令牌
func (h *AuthHandler) Login(c *gin.Context) {
	var loginData struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&loginData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	token, member, err := h.memberService.Login(loginData.Email, loginData.Password)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	http.SetCookie(c.Writer, h.auth.AccessCookie(token))

	errors.HandleSuccess(c, gin.H{
		"id": member.ID,
	}, "登录成功")
}

// Logout 处理会员登出，下发立即过期的Cookie清除指令
func (h *AuthHandler) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, h.auth.ExpireCookie())
	errors.HandleSuccess(c, nil, "已成功登出")
}

// 密码至少8位，需包含字母、数字和特殊字符
func isPasswordStrong(password string) bool {
	var (
		hasLetter  = false
		hasNumber  = false
		hasSpecial = false
	)
	if len(password) < 8 {
		return false
	}
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}
	return hasLetter && hasNumber && hasSpecial
}

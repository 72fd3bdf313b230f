package service

import (
	"net/http"

	"github.com/Kim-Changgyu/ShoeKream/config"
	"github.com/Kim-Changgyu/ShoeKream/internal/errors"
	"github.com/Kim-Changgyu/ShoeKream/internal/model"
	"github.com/Kim-Changgyu/ShoeKream/internal/repository/interfaces"
	"github.com/Kim-Changgyu/ShoeKream/internal/util"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 处理凭证验证与令牌签发
type AuthService struct {
	memberRepo interfaces.MemberRepository
}

// NewAuthService 创建一个新的 AuthService 实例
func NewAuthService(memberRepo interfaces.MemberRepository) *AuthService {
	return &AuthService{memberRepo}
}

// Authenticate 验证邮箱和密码。账号不存在与密码错误返回同一错误，
// 避免暴露哪一项有误
func (s *AuthService) Authenticate(email, password string) (*model.Member, error) {
	member, err := s.memberRepo.FindByEmail(email)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询会员失败", err)
	}
	if member == nil {
		util.Logger.Warn("登录失败，账号不存在", zap.String("email", email))
		return nil, errors.New(errors.ErrInvalidCredentials, "邮箱或密码错误")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		util.Logger.Warn("登录失败，密码不正确", zap.Int64("member_id", member.ID))
		return nil, errors.New(errors.ErrInvalidCredentials, "邮箱或密码错误")
	}

	return member, nil
}

// IssueToken 签发无状态的会话令牌
func (s *AuthService) IssueToken(memberID int64, authority model.Authority) (string, error) {
	token, err := util.GenerateToken(memberID, string(authority))
	if err != nil {
		return "", errors.Wrap(errors.ErrInternal, "生成令牌失败", err)
	}
	return token, nil
}

// HashPassword 生成密码哈希
func (s *AuthService) HashPassword(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(errors.ErrInternal, "生成密码哈希失败", err)
	}
	return string(hashed), nil
}

// AccessCookie 构造携带令牌的会话Cookie
func (s *AuthService) AccessCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     config.AppConfig.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   config.AppConfig.TokenTTLHours * 3600,
		HttpOnly: true,
	}
}

// ExpireCookie 构造清除指令。服务端不保存任何会话状态，
// 注销后令牌在自然过期前仍然有效
func (s *AuthService) ExpireCookie() *http.Cookie {
	return &http.Cookie{
		Name:     config.AppConfig.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	}
}

type AuthServiceInterface interface {
	Authenticate(email, password string) (*model.Member, error)
	IssueToken(memberID int64, authority model.Authority) (string, error)
	HashPassword(raw string) (string, error)
	AccessCookie(token string) *http.Cookie
	ExpireCookie() *http.Cookie
}

// 确保 AuthService 实现了 AuthServiceInterface
var _ AuthServiceInterface = (*AuthService)(nil)

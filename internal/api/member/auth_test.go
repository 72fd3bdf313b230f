package member

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Kim-Changgyu/ShoeKream/config"
	"github.com/Kim-Changgyu/ShoeKream/internal/errors"
	"github.com/Kim-Changgyu/ShoeKream/internal/middleware"
	"github.com/Kim-Changgyu/ShoeKream/internal/model"
	"github.com/Kim-Changgyu/ShoeKream/internal/service"
	"github.com/Kim-Changgyu/ShoeKream/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.AccessTokenCookie = "access_token"
	config.AppConfig.TokenTTLHours = 24

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("phone", util.ValidatePhone)
	}

	os.Exit(m.Run())
}

// MockMemberService 是 MemberServiceInterface 接口的模拟实现
type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) Register(member *model.Member) error {
	args := m.Called(member)
	return args.Error(0)
}

func (m *MockMemberService) Login(email, password string) (string, *model.Member, error) {
	args := m.Called(email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.Member), args.Error(2)
}

func (m *MockMemberService) Get(memberID int64) (*model.MemberView, error) {
	args := m.Called(memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MemberView), args.Error(1)
}

func (m *MockMemberService) Update(authenticatedID, memberID int64, update *model.MemberUpdate, imageFile *multipart.FileHeader) (*model.MemberView, error) {
	args := m.Called(authenticatedID, memberID, update, imageFile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MemberView), args.Error(1)
}

func setupAuthRouter(memberService service.MemberServiceInterface) *gin.Engine {
	auth := service.NewAuthService(nil)
	handler := NewAuthHandler(memberService, auth)

	r := gin.New()
	api := r.Group("/api/v1/member")
	api.POST("/signup", handler.Register)
	api.POST("/login", handler.Login)

	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	authorized.GET("/logout", handler.Logout)

	return r
}

func performJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestRegisterHandler 测试注册接口返回201和新会员ID
func TestRegisterHandler(t *testing.T) {
	mockService := new(MockMemberService)
	mockService.On("Register", mock.AnythingOfType("*model.Member")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*model.Member).ID = 1
		}).Return(nil)

	r := setupAuthRouter(mockService)
	w := performJSON(r, "POST", "/api/v1/member/signup", gin.H{
		"name":     "name",
		"email":    "hello@naver.com",
		"phone":    "01012345678",
		"password": "Pa!12345678",
		"is_male":  true,
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(1), response.Data.ID)
	mockService.AssertExpectations(t)
}

// TestRegisterHandlerWeakPassword 弱密码直接拒绝，不触达服务层
func TestRegisterHandlerWeakPassword(t *testing.T) {
	mockService := new(MockMemberService)
	r := setupAuthRouter(mockService)

	for _, password := range []string{"short!1", "password", "12345678", "abcdefgh1"} {
		w := performJSON(r, "POST", "/api/v1/member/signup", gin.H{
			"name":     "name",
			"email":    "hello@naver.com",
			"phone":    "01012345678",
			"password": password,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, "password: %s", password)
	}

	// 无大写字母但满足字母+数字+特殊字符的密码应通过
	mockService.On("Register", mock.AnythingOfType("*model.Member")).Return(nil)
	w := performJSON(r, "POST", "/api/v1/member/signup", gin.H{
		"name":     "name",
		"email":    "hello@naver.com",
		"phone":    "01012345678",
		"password": "changed!12345",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

// TestRegisterHandlerInvalidPhone 手机号格式校验
func TestRegisterHandlerInvalidPhone(t *testing.T) {
	mockService := new(MockMemberService)
	r := setupAuthRouter(mockService)

	w := performJSON(r, "POST", "/api/v1/member/signup", gin.H{
		"name":     "name",
		"email":    "hello@naver.com",
		"phone":    "02012345678",
		"password": "Pa!12345678",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Register", mock.Anything)
}

// TestRegisterHandlerDuplicateEmail 重复邮箱返回409
func TestRegisterHandlerDuplicateEmail(t *testing.T) {
	mockService := new(MockMemberService)
	mockService.On("Register", mock.AnythingOfType("*model.Member")).
		Return(errors.New(errors.ErrMemberExists, "email already exists"))

	r := setupAuthRouter(mockService)
	w := performJSON(r, "POST", "/api/v1/member/signup", gin.H{
		"name":     "name",
		"email":    "hello@naver.com",
		"phone":    "01012345678",
		"password": "Pa!12345678",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

// TestLoginHandler 登录成功时Cookie中的令牌可通过签名验证
func TestLoginHandler(t *testing.T) {
	token, err := util.GenerateToken(7, string(model.RoleUser))
	assert.NoError(t, err)

	mockService := new(MockMemberService)
	mockService.On("Login", "hello@naver.com", "Pa!12345678").
		Return(token, &model.Member{ID: 7, Email: "hello@naver.com"}, nil)

	r := setupAuthRouter(mockService)
	w := performJSON(r, "POST", "/api/v1/member/login", gin.H{
		"email":    "hello@naver.com",
		"password": "Pa!12345678",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var accessCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == config.AppConfig.AccessTokenCookie {
			accessCookie = cookie
		}
	}
	assert.NotNil(t, accessCookie)
	assert.True(t, accessCookie.HttpOnly)

	memberID, authority, err := util.ValidateToken(accessCookie.Value)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), memberID)
	assert.Equal(t, string(model.RoleUser), authority)
}

// TestLoginHandlerIndistinguishableFailures 两种登录失败的响应完全一致
func TestLoginHandlerIndistinguishableFailures(t *testing.T) {
	loginErr := errors.New(errors.ErrInvalidCredentials, "邮箱或密码错误")

	mockService := new(MockMemberService)
	mockService.On("Login", "hello@naver.com", "wrong-password").Return("", nil, loginErr)
	mockService.On("Login", "missing@naver.com", "Pa!12345678").Return("", nil, loginErr)

	r := setupAuthRouter(mockService)
	w1 := performJSON(r, "POST", "/api/v1/member/login", gin.H{
		"email":    "hello@naver.com",
		"password": "wrong-password",
	})
	w2 := performJSON(r, "POST", "/api/v1/member/login", gin.H{
		"email":    "missing@naver.com",
		"password": "Pa!12345678",
	})

	assert.Equal(t, http.StatusUnauthorized, w1.Code)
	assert.Equal(t, w1.Code, w2.Code)
	assert.Equal(t, w1.Body.String(), w2.Body.String())
	assert.Empty(t, w1.Result().Cookies())
}

// TestLogoutHandler 登出下发立即过期的Cookie清除指令
func TestLogoutHandler(t *testing.T) {
	token, err := util.GenerateToken(1, string(model.RoleUser))
	assert.NoError(t, err)

	r := setupAuthRouter(new(MockMemberService))
	req, _ := http.NewRequest("GET", "/api/v1/member/logout", nil)
	req.AddCookie(&http.Cookie{Name: config.AppConfig.AccessTokenCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")

	var accessCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == config.AppConfig.AccessTokenCookie {
			accessCookie = cookie
		}
	}
	assert.NotNil(t, accessCookie)
	assert.Empty(t, accessCookie.Value)
	assert.True(t, accessCookie.MaxAge < 0)
}

// TestLogoutHandlerUnauthenticated 无令牌访问登出接口返回401
func TestLogoutHandlerUnauthenticated(t *testing.T) {
	r := setupAuthRouter(new(MockMemberService))
	req, _ := http.NewRequest("GET", "/api/v1/member/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kim-Changgyu/ShoeKream/config"
	"github.com/Kim-Changgyu/ShoeKream/internal/api/member"
	"github.com/Kim-Changgyu/ShoeKream/internal/middleware"
	"github.com/Kim-Changgyu/ShoeKream/internal/repository/mysql"
	"github.com/Kim-Changgyu/ShoeKream/internal/service"
	"github.com/Kim-Changgyu/ShoeKream/internal/storage"
	"github.com/Kim-Changgyu/ShoeKream/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

func main() {
	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	// 设置数据库连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBHost,
		config.AppConfig.DBPort,
		config.AppConfig.DBName)

	// 连接数据库
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer db.Close()

	// 测试数据库连接
	if err = db.Ping(); err != nil {
		util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
	}
	util.Logger.Info("数据库连接成功")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("phone", util.ValidatePhone)
	}

	// 初始化对象存储，优先级：S3 > GCS > 本地存储
	objectStorage := initStorage()

	// 初始化存储库、服务和处理器
	memberRepo := mysql.NewMemberRepository(db)
	imageRepo := mysql.NewImageRepository(db)
	authService := service.NewAuthService(memberRepo)
	memberService := service.NewMemberService(memberRepo, imageRepo, objectStorage, authService, db)
	authHandler := member.NewAuthHandler(memberService, authService)
	profileHandler := member.NewProfileHandler(memberService)

	// 初始化错误监控
	errorMonitor := middleware.NewErrorMonitor()

	// 设置 Gin 路由
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
	}
	r.Use(cors.New(corsConfig))

	// 本地存储时提供静态文件服务
	r.Static("/uploads", config.AppConfig.LocalStoragePath)

	// 定义 API 路由
	api := r.Group("/api/v1/member")
	{
		api.POST("/signup", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.GET("/:id", profileHandler.GetMember)

		// 需要认证的路由
		authorized := api.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			authorized.GET("/logout", authHandler.Logout)
			authorized.POST("/:id", profileHandler.UpdateMember)
			authorized.PUT("/:id", profileHandler.UpdateMember)
		}
	}

	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动，监听端口 :8080")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}

func initStorage() storage.ObjectStorage {
	if config.AppConfig.S3Bucket != "" {
		s3Client, err := storage.NewS3Client(config.AppConfig.S3Region, config.AppConfig.S3Bucket)
		if err != nil {
			util.Logger.Fatal("初始化S3客户端失败", zap.Error(err))
		}
		util.Logger.Info("使用S3对象存储", zap.String("bucket", config.AppConfig.S3Bucket))
		return s3Client
	}

	if config.AppConfig.GCSBucketName != "" {
		gcsClient, err := storage.NewGCSClient(config.AppConfig.GCSBucketName, config.AppConfig.GCSCredentialsFile)
		if err != nil {
			util.Logger.Fatal("初始化GCS客户端失败", zap.Error(err))
		}
		util.Logger.Info("使用GCS对象存储", zap.String("bucket", config.AppConfig.GCSBucketName))
		return gcsClient
	}

	localStorage, err := storage.NewLocalStorage(config.AppConfig.LocalStoragePath, config.AppConfig.BackendURL)
	if err != nil {
		util.Logger.Fatal("初始化本地存储失败", zap.Error(err))
	}
	util.Logger.Info("使用本地存储", zap.String("path", config.AppConfig.LocalStoragePath))
	return localStorage
}

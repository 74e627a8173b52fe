package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sonicstream/config"
	"sonicstream/core/auth"
	"sonicstream/db"
	"sonicstream/logger"
	"sonicstream/model"
	"sonicstream/repository"
	"sonicstream/storage"

	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	})

	auth.InitJWT(cfg.JWTSecret, cfg.JWTExpiresIn)

	// 设置服务器超时
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 初始化 MinIO 客户端
	if err := storage.InitMinio(cfg); err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	// Connect to the database
	if err := db.ConnectDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.DB.Close()

	// GORM连接与基础连接并存，点赞模块使用GORM
	if err := db.ConnectGormDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database with GORM: %v", err)
	}
	defer db.CloseGormDB()

	// Connect to Redis
	if err := db.ConnectRedis(cfg); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer db.CloseRedis()
	log.Println("Successfully connected to Redis")

	// Initialize database schema
	if err := db.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := db.AutoMigrateModels(&model.Category{}, &model.Like{}); err != nil {
		log.Fatalf("Failed to migrate models: %v", err)
	}

	trackRepo := repository.NewMySQLTrackRepository(db.DB)
	playlistRepo := repository.NewMySQLPlaylistRepository(db.DB)
	likeRepo := repository.NewGormLikeRepository(db.GormDB)
	userRepo := repository.NewMySQLUserRepository(db.DB)

	// 初始化处理器
	apiHandler := NewAPIHandler(trackRepo, playlistRepo, likeRepo, userRepo, cfg)

	router := NewRouter(apiHandler)
	server.Handler = router

	// 创建一个通道来接收操作系统信号
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 在goroutine中启动服务器
	go func() {
		log.Printf("Server starting on :%s...", cfg.ServerPort)
		log.Printf("Browse the catalog via GET http://localhost:%s/api/music", cfg.ServerPort)
		log.Printf("Manage playlists via /api/playlists endpoints")
		log.Printf("Toggle likes via POST /api/likes/toggle")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// 等待中断信号
	<-stop
	log.Println("Shutting down server...")

	// 创建一个5秒超时的上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 优雅关闭服务器
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// NewRouter 构建路由。独立出来便于测试直接挂载处理器
func NewRouter(apiHandler *APIHandler) *mux.Router {
	router := mux.NewRouter()

	// 添加 CORS 中间件
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// 曲目发现相关的API端点
	router.HandleFunc("/api/music", apiHandler.GetTracksHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/music/search", apiHandler.SearchTracksHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/music/trending", apiHandler.GetTrendingHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/music/upload", apiHandler.AuthMiddleware(apiHandler.UploadTrackHandler)).Methods(http.MethodPost)

	// 播放列表相关的API端点
	router.HandleFunc("/api/playlists", apiHandler.CreatePlaylistHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists", apiHandler.GetUserPlaylistsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists/add-track", apiHandler.AddTrackToPlaylistHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists/{id}", apiHandler.GetPlaylistDetailsHandler).Methods(http.MethodGet)

	// 点赞相关的API端点
	router.HandleFunc("/api/likes/toggle", apiHandler.ToggleLikeHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/likes", apiHandler.GetLikedTracksHandler).Methods(http.MethodGet)

	// 用户认证相关的API端点
	router.HandleFunc("/api/auth/login", apiHandler.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/register", apiHandler.RegisterHandler).Methods(http.MethodPost)

	router.HandleFunc("/health", apiHandler.HealthHandler).Methods(http.MethodGet)
	router.HandleFunc("/", apiHandler.RootHandler).Methods(http.MethodGet)

	return router
}

package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/immersionlog/internal/config"
	"github.com/immersionlog/internal/db"
	"github.com/immersionlog/internal/dsapi"
	"github.com/immersionlog/internal/handler"
	"github.com/immersionlog/internal/router"
	"github.com/immersionlog/internal/service"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	var passwordHash []byte
	if cfg.DashboardPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DashboardPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash dashboard password: %v", err)
		}
		passwordHash = hash
	}

	progress := service.NewProgressService(db.DB, dsapi.NewClient(cfg.UpstreamBaseURL))
	api := handler.NewAPI(db.DB, progress, cfg.HelpPagePath, passwordHash)

	// 设置并运行 Gin 服务器
	r := router.Setup(api, cfg.SessionSecret)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

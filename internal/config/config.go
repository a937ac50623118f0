package config

import (
	"fmt"
	"os"
	"strings"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr        string
	Port              string
	DatabasePath      string
	SessionSecret     string
	GinMode           string
	UpstreamBaseURL   string
	DashboardPassword string
	HelpPagePath      string
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "immersionlog.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "immersionlog-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	upstreamBaseURL := strings.TrimSpace(os.Getenv("DS_API_BASE_URL"))

	helpPagePath := strings.TrimSpace(os.Getenv("HELP_PAGE_PATH"))
	if helpPagePath == "" {
		helpPagePath = "docs/bearer_how_to.md"
	}

	// 为空时不启用访问口令
	dashboardPassword := strings.TrimSpace(os.Getenv("DASHBOARD_PASSWORD"))

	return AppConfig{
		ListenAddr:        listenAddr,
		Port:              port,
		DatabasePath:      databasePath,
		SessionSecret:     sessionSecret,
		GinMode:           ginMode,
		UpstreamBaseURL:   upstreamBaseURL,
		DashboardPassword: dashboardPassword,
		HelpPagePath:      helpPagePath,
	}
}

package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/immersionlog/internal/handler"
)

// Setup 配置 Gin 引擎和路由。
func Setup(api *handler.API, sessionSecret string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("immersionlog_session", store))

	r.GET("/healthz", api.HealthCheck)
	r.GET("/help/bearer-token", api.ShowBearerHelp)

	if api.PasswordProtected() {
		r.POST("/login", api.Login)
	}
	r.POST("/logout", api.Logout)

	apiGroup := r.Group("/api")
	apiGroup.Use(api.AccessGate())
	{
		apiGroup.POST("/session/token", api.SubmitToken)
		apiGroup.DELETE("/session/token", api.ClearToken)

		// 需要令牌的数据端点
		data := apiGroup.Group("")
		data.Use(api.TokenRequired())
		{
			data.GET("/dashboard", api.GetDashboard)
			data.GET("/dashboard/cached", api.GetCachedDashboard)
			data.GET("/heatmap", api.GetHeatmap)
			data.GET("/export.csv", api.ExportCSV)
		}
	}

	return r
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/immersionlog/internal/dsapi"
	"golang.org/x/crypto/bcrypt"
)

const sessionAuthedKey = "authed"

const validateTimeout = 30 * time.Second

type loginRequest struct {
	Password string `json:"password"`
}

// Login 校验访问口令并在会话中打标。未配置口令时该端点不注册。
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, "请求格式不正确") {
		return
	}

	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "口令错误")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionAuthedKey, true)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Logout 清空会话（包括已保存的上游令牌）。
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AccessGate 是访问口令中间件，未配置口令时直接放行。
func (a *API) AccessGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.PasswordProtected() {
			c.Next()
			return
		}

		session := sessions.Default(c)
		if authed, ok := session.Get(sessionAuthedKey).(bool); !ok || !authed {
			respondError(c, http.StatusUnauthorized, "需要先通过口令验证")
			c.Abort()
			return
		}
		c.Next()
	}
}

type tokenRequest struct {
	Token string `json:"token"`
}

// SubmitToken 校验上游令牌并存入会话，后续仪表盘请求据此拉取数据。
// 令牌无效时在任何引擎计算之前就返回用户可读的错误。
func (a *API) SubmitToken(c *gin.Context) {
	var req tokenRequest
	if !bindJSON(c, &req, "请求格式不正确") {
		return
	}
	if req.Token == "" {
		respondError(c, http.StatusBadRequest, "请先填写 bearer token")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), validateTimeout)
	defer cancel()

	if err := a.progress.Validate(ctx, req.Token); err != nil {
		if errors.Is(err, dsapi.ErrInvalidToken) {
			respondError(c, http.StatusUnauthorized,
				"令牌校验失败，请确认没有混入类似 'token:' 的前缀")
			return
		}
		respondError(c, http.StatusBadGateway, "上游接口暂时不可用")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionTokenKey, req.Token)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ClearToken 从会话中移除令牌。
func (a *API) ClearToken(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(sessionTokenKey)
	session.Save()
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// TokenRequired 确保会话中已有有效令牌。
func (a *API) TokenRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionToken(c) == "" {
			respondError(c, http.StatusUnauthorized, "请先提交 bearer token")
			c.Abort()
			return
		}
		c.Next()
	}
}

package handler

import (
	"bytes"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// ShowBearerHelp 渲染“如何获取 bearer token”的说明页。
// 文档缺失时返回 404，不视为服务端错误。
func (a *API) ShowBearerHelp(c *gin.Context) {
	source, err := os.ReadFile(a.helpPagePath)
	if err != nil {
		respondError(c, http.StatusNotFound, "说明文档不存在")
		return
	}

	var rendered bytes.Buffer
	if err := markdownEngine.Convert(source, &rendered); err != nil {
		respondError(c, http.StatusInternalServerError, "渲染说明文档失败")
		return
	}

	safe := sanitizer.SanitizeBytes(rendered.Bytes())
	c.Data(http.StatusOK, "text/html; charset=utf-8", safe)
}

package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func helpAPI(t *testing.T, helpPagePath string) *API {
	t.Helper()
	return NewAPI(nil, nil, helpPagePath, nil)
}

func performHelp(api *API) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/help/bearer-token", nil)
	api.ShowBearerHelp(c)
	return w
}

func TestShowBearerHelpRendersMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "help.md")
	content := "# Finding your token\n\nOpen the **Network** tab.\n\n<script>alert(1)</script>\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write help page: %v", err)
	}

	w := performHelp(helpAPI(t, path))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, "<h1") || !strings.Contains(body, "Finding your token") {
		t.Fatalf("heading missing from rendered help: %s", body)
	}
	if !strings.Contains(body, "<strong>Network</strong>") {
		t.Fatalf("bold text missing from rendered help: %s", body)
	}
	// 脚本标签必须被清洗掉
	if strings.Contains(body, "<script>") {
		t.Fatalf("script survived sanitization: %s", body)
	}
}

func TestShowBearerHelpMissingFile(t *testing.T) {
	w := performHelp(helpAPI(t, filepath.Join(t.TempDir(), "nope.md")))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

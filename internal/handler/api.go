package handler

import (
	"github.com/immersionlog/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db           *gorm.DB
	progress     *service.ProgressService
	helpPagePath string
	passwordHash []byte
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, progress *service.ProgressService, helpPagePath string, passwordHash []byte) *API {
	return &API{
		db:           gdb,
		progress:     progress,
		helpPagePath: helpPagePath,
		passwordHash: passwordHash,
	}
}

// DB exposes the underlying gorm instance for legacy paths.
func (a *API) DB() *gorm.DB {
	return a.db
}

// PasswordProtected 返回是否启用了访问口令。
func (a *API) PasswordProtected() bool {
	return len(a.passwordHash) > 0
}

package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/immersionlog/internal/chart"
	"github.com/immersionlog/internal/dsapi"
	"github.com/immersionlog/internal/service"
	"github.com/immersionlog/internal/stats"
)

const refreshTimeout = 60 * time.Second

// loadFresh 拉取最新数据，统一处理上游错误的对外表述。
func (a *API) loadFresh(c *gin.Context) (*service.ProgressData, bool) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), refreshTimeout)
	defer cancel()

	data, err := a.progress.Refresh(ctx, sessionToken(c))
	if err != nil {
		if errors.Is(err, dsapi.ErrInvalidToken) {
			respondError(c, http.StatusUnauthorized, "令牌已失效，请重新提交")
			return nil, false
		}
		respondError(c, http.StatusBadGateway, "拉取上游数据失败")
		return nil, false
	}
	return data, true
}

// GetDashboard 每次调用都重新拉取并全量重算，返回完整仪表盘数据。
func (a *API) GetDashboard(c *gin.Context) {
	data, ok := a.loadFresh(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, service.BuildDashboard(data, time.Now().UTC()))
}

// GetCachedDashboard 基于最近一次快照重算仪表盘，结果带过期标记。
func (a *API) GetCachedDashboard(c *gin.Context) {
	data, err := a.progress.Cached(sessionToken(c))
	if err != nil {
		if errors.Is(err, service.ErrNoSnapshot) {
			respondError(c, http.StatusNotFound, "还没有可用的本地快照")
			return
		}
		respondError(c, http.StatusInternalServerError, "读取快照失败")
		return
	}
	c.JSON(http.StatusOK, service.BuildDashboard(data, time.Now().UTC()))
}

// GetHeatmap 返回指定年份的热力图数据，默认取当前年份。
func (a *API) GetHeatmap(c *gin.Context) {
	data, ok := a.loadFresh(c)
	if !ok {
		return
	}

	year := parseIntQuery(c, "year", time.Now().UTC().Year())
	derived := stats.Derive(data.Series)
	c.JSON(http.StatusOK, chart.HeatmapGrid(year, derived.YearHeatmap(year)))
}

// ExportCSV 导出完整派生序列，一行一天。
func (a *API) ExportCSV(c *gin.Context) {
	data, ok := a.loadFresh(c)
	if !ok {
		return
	}

	derived := stats.Derive(data.Series)

	var buf bytes.Buffer
	if err := chart.WriteCSV(&buf, derived); err != nil {
		respondError(c, http.StatusInternalServerError, "生成 CSV 失败")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="immersion_log.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

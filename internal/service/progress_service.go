package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/immersionlog/internal/db"
	"github.com/immersionlog/internal/dsapi"
	"github.com/immersionlog/internal/stats"
	"gorm.io/gorm"
)

// ErrNoSnapshot 表示该令牌还没有任何本地快照。
var ErrNoSnapshot = errors.New("no snapshot available")

// loaderClient 抽象上游数据拉取，便于在测试中替换。
type loaderClient interface {
	DayWatchedTimes(ctx context.Context, token string) ([]dsapi.DayWatchedTime, error)
	UserInfo(ctx context.Context, token string) (dsapi.UserInfo, error)
}

// ProgressData 是一次加载得到的完整输入：原始序列加上游配置。
// 引擎需要的所有汇总指标都从 Series 重新推导，不使用上游附带的统计值。
type ProgressData struct {
	Series           stats.Series
	DailyGoalSeconds int
	FetchedAt        time.Time
	Stale            bool
}

// ProgressService 负责拉取上游数据、落地快照并还原历史快照。
type ProgressService struct {
	db  *gorm.DB
	api loaderClient
}

// NewProgressService 构造 ProgressService。
func NewProgressService(gdb *gorm.DB, api loaderClient) *ProgressService {
	return &ProgressService{db: gdb, api: api}
}

// TokenDigest 返回令牌的十六进制摘要，用作快照归属键，避免明文落盘。
func TokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Validate 只校验令牌有效性，不拉取完整序列。
func (s *ProgressService) Validate(ctx context.Context, token string) error {
	_, err := s.api.UserInfo(ctx, token)
	return err
}

// Refresh 从上游拉取最新数据并写入一条新快照。
// 上游失败时不动已有快照，直接把错误交给调用方。
func (s *ProgressService) Refresh(ctx context.Context, token string) (*ProgressData, error) {
	info, err := s.api.UserInfo(ctx, token)
	if err != nil {
		return nil, err
	}

	rawDays, err := s.api.DayWatchedTimes(ctx, token)
	if err != nil {
		return nil, err
	}

	days := make([]stats.DailyRecord, 0, len(rawDays))
	for _, raw := range rawDays {
		date, err := raw.ParseDate()
		if err != nil {
			return nil, err
		}
		days = append(days, stats.DailyRecord{
			Date:        date,
			Seconds:     raw.TimeSeconds,
			GoalReached: raw.GoalReached,
		})
	}

	data := &ProgressData{
		Series: stats.Series{
			Days:               days,
			InitialTimeSeconds: info.InitialTimeSeconds,
		},
		DailyGoalSeconds: info.DailyGoalSeconds,
		FetchedAt:        time.Now().UTC(),
	}

	if err := s.saveSnapshot(token, data); err != nil {
		return nil, err
	}

	return data, nil
}

// Cached 从最近一条快照还原加载结果，并标记为过期数据。
func (s *ProgressService) Cached(token string) (*ProgressData, error) {
	var snapshot db.SeriesSnapshot
	err := s.db.Preload("Days", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("date ASC")
	}).
		Where("token_digest = ?", TokenDigest(token)).
		Order("fetched_at DESC").
		First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	days := make([]stats.DailyRecord, 0, len(snapshot.Days))
	for _, day := range snapshot.Days {
		days = append(days, stats.DailyRecord{
			Date:        day.Date,
			Seconds:     day.Seconds,
			GoalReached: day.GoalReached,
		})
	}

	return &ProgressData{
		Series: stats.Series{
			Days:               days,
			InitialTimeSeconds: snapshot.InitialTimeSeconds,
		},
		DailyGoalSeconds: snapshot.DailyGoalSeconds,
		FetchedAt:        snapshot.FetchedAt,
		Stale:            true,
	}, nil
}

// saveSnapshot 以新快照替换该令牌的旧快照，始终只保留最近一份。
func (s *ProgressService) saveSnapshot(token string, data *ProgressData) error {
	digest := TokenDigest(token)

	snapshot := db.SeriesSnapshot{
		ID:                 uuid.NewString(),
		TokenDigest:        digest,
		InitialTimeSeconds: data.Series.InitialTimeSeconds,
		DailyGoalSeconds:   data.DailyGoalSeconds,
		FetchedAt:          data.FetchedAt,
	}
	for _, day := range data.Series.Days {
		snapshot.Days = append(snapshot.Days, db.SnapshotDay{
			Date:        stats.NormalizeDate(day.Date),
			Seconds:     day.Seconds,
			GoalReached: day.GoalReached,
		})
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var old []db.SeriesSnapshot
		if err := tx.Where("token_digest = ?", digest).Find(&old).Error; err != nil {
			return fmt.Errorf("find old snapshots: %w", err)
		}
		for _, stale := range old {
			if err := tx.Where("snapshot_id = ?", stale.ID).Delete(&db.SnapshotDay{}).Error; err != nil {
				return fmt.Errorf("delete old snapshot days: %w", err)
			}
			if err := tx.Delete(&stale).Error; err != nil {
				return fmt.Errorf("delete old snapshot: %w", err)
			}
		}

		if err := tx.Create(&snapshot).Error; err != nil {
			return fmt.Errorf("create snapshot: %w", err)
		}
		return nil
	})
}

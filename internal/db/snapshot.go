package db

import "time"

// SeriesSnapshot 记录一次成功拉取的完整原始序列。
// 只缓存原始输入，所有派生指标仍在每次请求时全量重算。
type SeriesSnapshot struct {
	ID                 string `gorm:"primaryKey;size:36"`
	TokenDigest        string `gorm:"size:64;index"`
	InitialTimeSeconds int
	DailyGoalSeconds   int
	FetchedAt          time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Days []SnapshotDay `gorm:"foreignKey:SnapshotID;constraint:OnDelete:CASCADE"`
}

// TableName 指定自定义表名。
func (SeriesSnapshot) TableName() string {
	return "series_snapshots"
}

// SnapshotDay 是快照中的单日记录。
type SnapshotDay struct {
	ID          uint      `gorm:"primaryKey"`
	SnapshotID  string    `gorm:"size:36;uniqueIndex:idx_snapshot_day"`
	Date        time.Time `gorm:"uniqueIndex:idx_snapshot_day"`
	Seconds     int
	GoalReached bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName 指定自定义表名。
func (SnapshotDay) TableName() string {
	return "snapshot_days"
}

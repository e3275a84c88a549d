package models

import "time"

// StatsSnapshot stores daily row counts collected by the stats scheduler.
type StatsSnapshot struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserCount   int64     `json:"userCount"`
	ItemCount   int64     `json:"itemCount"`
	ImageCount  int64     `json:"imageCount"`
	ReviewCount int64     `json:"reviewCount"`
	CollectedAt time.Time `gorm:"index" json:"collectedAt"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (StatsSnapshot) TableName() string {
	return "stats_snapshots"
}

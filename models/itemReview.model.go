package models

import "time"

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

type ItemReview struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ItemID        uint      `gorm:"not null;index" json:"itemId"`
	UserID        uint      `gorm:"column:usr_id;not null;index" json:"userId"`
	ReviewContent string    `gorm:"type:text;not null" json:"reviewContent"`
	Score         int       `gorm:"not null;check:score >= 1 AND score <= 5" json:"score"` // 1-5 rating
	Sentiment     string    `gorm:"size:16;default:''" json:"sentiment"`
	Confidence    int       `gorm:"default:0" json:"confidence"` // percent, 0-100
	Explanation   string    `gorm:"type:text;default:''" json:"explanation"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (ItemReview) TableName() string {
	return "item_review"
}

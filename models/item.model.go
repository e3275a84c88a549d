package models

import "time"

type Item struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"not null" json:"name"`
	Description string      `gorm:"type:text;default:''" json:"description"`
	Price       float64     `gorm:"not null" json:"price"`
	Tax         float64     `gorm:"default:0" json:"tax"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"createdAt"`
	Images      []ItemImage `gorm:"foreignKey:ItemID" json:"images,omitempty"`
}

func (Item) TableName() string {
	return "items"
}

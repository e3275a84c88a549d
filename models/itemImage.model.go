package models

import "time"

type ItemImage struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ItemID           uint      `gorm:"not null;index:idx_item_images_item_id" json:"itemId"`
	ImagePath        string    `gorm:"size:512;not null" json:"imagePath"`
	ImageFilename    string    `gorm:"size:255;not null" json:"imageFilename"`
	OriginalFilename string    `gorm:"size:255" json:"originalFilename"`
	FileExtension    string    `gorm:"size:16" json:"fileExtension"`
	FileSize         int64     `gorm:"default:0" json:"fileSize"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (ItemImage) TableName() string {
	return "item_images"
}

package model

import "time"

// 出店者プロフィール。Userと1:1。商品を0個以上持つ。
type Store struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	TaxID  string `gorm:"column:tax_id;type:varchar(12);uniqueIndex;not null" json:"tax_id"`
	Name   string `gorm:"type:varchar(200);not null" json:"name"`
	Owner  string `gorm:"type:varchar(200);not null" json:"owner"`
	UserID int64  `gorm:"not null;uniqueIndex" json:"user_id"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

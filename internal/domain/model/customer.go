package model

import "time"

// 購入者プロフィール。Userと1:1、カートを1つ持つ。
// tax_id は customers / stores をまたいで一意。
type Customer struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	TaxID     string `gorm:"column:tax_id;type:varchar(12);uniqueIndex;not null" json:"tax_id"`
	FirstName string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(100);not null" json:"last_name"`
	UserID    int64  `gorm:"not null;uniqueIndex" json:"user_id"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 表示用のフルネーム
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

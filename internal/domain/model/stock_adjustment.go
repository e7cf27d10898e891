package model

import "time"

// 在庫パッチの履歴。ストアが在庫を直接書き換えたときに同一トランザクションで残す。
type StockAdjustment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	StoreID   int64     `gorm:"not null;index" json:"store_id"`
	Delta     int64     `gorm:"not null" json:"delta"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

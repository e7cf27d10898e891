package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 商品。必ず1つのStoreに属する。在庫は0未満にならない。
type Product struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title         string          `gorm:"type:varchar(200);not null" json:"title"`
	Type          string          `gorm:"type:varchar(100);not null" json:"type"`
	Brand         string          `gorm:"type:varchar(100);not null" json:"brand"`
	Description   string          `gorm:"type:varchar(500);not null" json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	StockQuantity int64           `gorm:"column:stock_quantity;not null" json:"stock_quantity"`
	StoreID       int64           `gorm:"not null;index" json:"store_id"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

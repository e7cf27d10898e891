package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer登録時に1つだけ作られ、作り直されない。
// total_price は明細のsubtotal合計。必ず再計算で更新する（直接編集しない）。
type ShoppingCart struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID int64           `gorm:"not null;uniqueIndex" json:"customer_id"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:decimal(12,2);not null" json:"total_price"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

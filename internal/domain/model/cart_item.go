package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// カート明細。(cart, product) はカート内で一意。
// 同じ商品を追加したら行を増やさず数量を合算する。
// subtotal は現在の商品価格 × 数量（カタログ価格に追従する）。
type CartItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64           `gorm:"not null;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID int64           `gorm:"not null;uniqueIndex:idx_cart_product" json:"product_id"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// subtotal = 単価 × 数量
func (ci *CartItem) RecalculateSubtotal(unitPrice decimal.Decimal) {
	ci.Subtotal = unitPrice.Mul(decimal.NewFromInt(ci.Quantity))
}

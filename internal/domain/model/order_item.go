package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細。price_at_purchase は注文時点の商品価格で固定し、
// 後からカタログ価格が変わっても再計算しない。
type OrderItem struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID         int64           `gorm:"not null;index" json:"order_id"`
	ProductID       int64           `gorm:"not null;index" json:"product_id"`
	Quantity        int64           `gorm:"not null" json:"quantity"`
	PriceAtPurchase decimal.Decimal `gorm:"column:price_at_purchase;type:decimal(12,2);not null" json:"price_at_purchase"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

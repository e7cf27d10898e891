package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// 1顧客×1ストアの確定済み購入スナップショット。
// チェックアウトはカート内のストアごとに1件ずつ作る。作成後は不変。
type Order struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID int64           `gorm:"not null;index" json:"customer_id"`
	StoreID    int64           `gorm:"not null;index" json:"store_id"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:decimal(12,2);not null" json:"total_price"`
	Status     OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	OrderDate  time.Time       `gorm:"column:order_date;not null;index" json:"order_date"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

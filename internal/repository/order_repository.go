package repository

import (
	"context"

	"eshop/internal/domain/model"

	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	//注文日の新しい順。limit <= 0 なら全件。
	ListByCustomerID(ctx context.Context, customerID int64, limit int) ([]model.Order, error)
	ListByStoreID(ctx context.Context, storeID int64, limit int) ([]model.Order, error)

	//顧客側の集計
	CountByCustomerID(ctx context.Context, customerID int64) (int64, error)
	CountByCustomerIDAndStatus(ctx context.Context, customerID int64, status model.OrderStatus) (int64, error)
	CountDistinctStoresByCustomerID(ctx context.Context, customerID int64) (int64, error)
	SumTotalPriceByCustomerID(ctx context.Context, customerID int64) (decimal.Decimal, error)
	SumItemQuantitiesByCustomerID(ctx context.Context, customerID int64) (int64, error)

	//購入履歴（おすすめ用）
	DistinctProductTypesByCustomerID(ctx context.Context, customerID int64) ([]string, error)
	DistinctProductBrandsByCustomerID(ctx context.Context, customerID int64) ([]string, error)
	DistinctProductIDsByCustomerID(ctx context.Context, customerID int64) ([]int64, error)

	//ストア側の集計
	CountByStoreID(ctx context.Context, storeID int64) (int64, error)
	CountByStoreIDAndStatus(ctx context.Context, storeID int64, status model.OrderStatus) (int64, error)
	CountDistinctCustomersByStoreID(ctx context.Context, storeID int64) (int64, error)
	SumTotalPriceByStoreID(ctx context.Context, storeID int64) (decimal.Decimal, error)
	SumItemQuantitiesByStoreID(ctx context.Context, storeID int64) (int64, error)
}

package usecase

import (
	"context"

	"eshop/internal/domain/model"
	repo "eshop/internal/repository"

	"github.com/shopspring/decimal"
)

// 顧客のダッシュボード集計。保存済みの数字は持たず毎回計算する。
type CustomerUsecase struct {
	tx repo.TransactionManager
}

func NewCustomerUsecase(tx repo.TransactionManager) *CustomerUsecase {
	return &CustomerUsecase{tx: tx}
}

type CustomerStatsOutput struct {
	CustomerID      int64           `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	CartItemCount   int64           `json:"cart_item_count"`
	CartTotal       decimal.Decimal `json:"cart_total"`
	TotalOrders     int64           `json:"total_orders"`
	CompletedOrders int64           `json:"completed_orders"`
	DistinctStores  int64           `json:"distinct_stores"`
	TotalSpent      decimal.Decimal `json:"total_spent"`
	ItemsPurchased  int64           `json:"items_purchased"`
}

func (u *CustomerUsecase) GetCustomerStats(ctx context.Context, userID int64) (CustomerStatsOutput, error) {
	var out CustomerStatsOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		customer, err := r.Customers().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewNotFound("Customer profile not found")
		}
		if err != nil {
			return NewInternal("db error")
		}

		cart, err := r.Carts().FindByCustomerID(ctx, customer.ID)
		if err == repo.ErrNotFound {
			return NewNotFound("Shopping cart not found")
		}
		if err != nil {
			return NewInternal("db error")
		}

		items, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewInternal("db error")
		}

		//カート内数量の合計（明細数ではない）
		var cartCount int64
		for _, item := range items {
			cartCount += item.Quantity
		}

		totalOrders, err := r.Orders().CountByCustomerID(ctx, customer.ID)
		if err != nil {
			return NewInternal("db error")
		}
		completed, err := r.Orders().CountByCustomerIDAndStatus(ctx, customer.ID, model.OrderStatusCompleted)
		if err != nil {
			return NewInternal("db error")
		}
		stores, err := r.Orders().CountDistinctStoresByCustomerID(ctx, customer.ID)
		if err != nil {
			return NewInternal("db error")
		}
		spent, err := r.Orders().SumTotalPriceByCustomerID(ctx, customer.ID)
		if err != nil {
			return NewInternal("db error")
		}
		purchased, err := r.Orders().SumItemQuantitiesByCustomerID(ctx, customer.ID)
		if err != nil {
			return NewInternal("db error")
		}

		out = CustomerStatsOutput{
			CustomerID:      customer.ID,
			CustomerName:    customer.FullName(),
			CartItemCount:   cartCount,
			CartTotal:       cart.TotalPrice,
			TotalOrders:     totalOrders,
			CompletedOrders: completed,
			DistinctStores:  stores,
			TotalSpent:      spent,
			ItemsPurchased:  purchased,
		}
		return nil
	})

	if err != nil {
		return CustomerStatsOutput{}, err
	}
	return out, nil
}

package usecase

import (
	"context"

	"eshop/internal/domain/model"
	repo "eshop/internal/repository"

	"github.com/shopspring/decimal"
)

// ストアの公開情報とダッシュボード集計。
// 集計は保存せず、毎回その場で数える。
type StoreUsecase struct {
	tx repo.TransactionManager
}

func NewStoreUsecase(tx repo.TransactionManager) *StoreUsecase {
	return &StoreUsecase{tx: tx}
}

type StoreOutput struct {
	StoreID      int64  `json:"store_id"`
	Name         string `json:"name"`
	Owner        string `json:"owner"`
	ProductCount int64  `json:"product_count"`
}

type StoreStatsOutput struct {
	StoreID            int64           `json:"store_id"`
	StoreName          string          `json:"store_name"`
	TotalProducts      int64           `json:"total_products"`
	ProductsInStock    int64           `json:"products_in_stock"`
	ProductsOutOfStock int64           `json:"products_out_of_stock"`
	TotalOrders        int64           `json:"total_orders"`
	CompletedOrders    int64           `json:"completed_orders"`
	DistinctCustomers  int64           `json:"distinct_customers"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	ItemsSold          int64           `json:"items_sold"`
}

// ListStores は全ストアの公開一覧。
func (u *StoreUsecase) ListStores(ctx context.Context) ([]StoreOutput, error) {
	var outs []StoreOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		stores, err := r.Stores().List(ctx)
		if err != nil {
			return NewInternal("db error")
		}

		outs = make([]StoreOutput, 0, len(stores))
		for _, s := range stores {
			out, err := buildStoreOutput(ctx, r, s)
			if err != nil {
				return err
			}
			outs = append(outs, out)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return outs, nil
}

func (u *StoreUsecase) GetStore(ctx context.Context, storeID int64) (StoreOutput, error) {
	var out StoreOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		s, err := r.Stores().FindByID(ctx, storeID)
		if err == repo.ErrNotFound {
			return NewNotFound("Store not found")
		}
		if err != nil {
			return NewInternal("db error")
		}

		out, err = buildStoreOutput(ctx, r, s)
		return err
	})

	if err != nil {
		return StoreOutput{}, err
	}
	return out, nil
}

// GetStoreStats はログイン中ストアのダッシュボード集計を返す。
func (u *StoreUsecase) GetStoreStats(ctx context.Context, userID int64) (StoreStatsOutput, error) {
	var out StoreStatsOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		store, err := resolveStore(ctx, r, userID)
		if err != nil {
			return err
		}

		totalProducts, err := r.Products().CountByStoreID(ctx, store.ID)
		if err != nil {
			return NewInternal("db error")
		}
		inStock, err := r.Products().CountInStockByStoreID(ctx, store.ID)
		if err != nil {
			return NewInternal("db error")
		}
		outOfStock, err := r.Products().CountOutOfStockByStoreID(ctx, store.ID)
		if err != nil {
			return NewInternal("db error")
		}

		totalOrders, err := r.Orders().CountByStoreID(ctx, store.ID)
		if err != nil {
			return NewInternal("db error")
		}
		completed, err := r.Orders().CountByStoreIDAndStatus(ctx, store.ID, model.OrderStatusCompleted)
		if err != nil {
			return NewInternal("db error")
		}
		customers, err := r.Orders().CountDistinctCustomersByStoreID(ctx, store.ID)
		if err != nil {
			return NewInternal("db error")
		}
		revenue, err := r.Orders().SumTotalPriceByStoreID(ctx, store.ID)
		if err != nil {
			return NewInternal("db error")
		}
		itemsSold, err := r.Orders().SumItemQuantitiesByStoreID(ctx, store.ID)
		if err != nil {
			return NewInternal("db error")
		}

		out = StoreStatsOutput{
			StoreID:            store.ID,
			StoreName:          store.Name,
			TotalProducts:      totalProducts,
			ProductsInStock:    inStock,
			ProductsOutOfStock: outOfStock,
			TotalOrders:        totalOrders,
			CompletedOrders:    completed,
			DistinctCustomers:  customers,
			TotalRevenue:       revenue,
			ItemsSold:          itemsSold,
		}
		return nil
	})

	if err != nil {
		return StoreStatsOutput{}, err
	}
	return out, nil
}

func buildStoreOutput(ctx context.Context, r repo.TxRepos, s model.Store) (StoreOutput, error) {
	count, err := r.Products().CountByStoreID(ctx, s.ID)
	if err != nil {
		return StoreOutput{}, NewInternal("db error")
	}
	return StoreOutput{
		StoreID:      s.ID,
		Name:         s.Name,
		Owner:        s.Owner,
		ProductCount: count,
	}, nil
}

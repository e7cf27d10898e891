package repository

import (
	"context"
	"errors"

	"eshop/internal/domain/model"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

// 商品検索。空のフィルタは無視する（AND結合）。
type ProductSearchQuery struct {
	Title    string
	Type     string
	Brand    string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	StoreID  *int64
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, productID int64) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, productID int64) error

	ListByStoreID(ctx context.Context, storeID int64) ([]model.Product, error)
	Search(ctx context.Context, q ProductSearchQuery) ([]model.Product, error)

	//おすすめ用。新しい順・在庫ありのみ。
	ListRecentInStock(ctx context.Context, limit int) ([]model.Product, error)
	ListRecommended(ctx context.Context, types []string, brands []string, excludeIDs []int64, limit int) ([]model.Product, error)

	CountByStoreID(ctx context.Context, storeID int64) (int64, error)
	CountInStockByStoreID(ctx context.Context, storeID int64) (int64, error)
	CountOutOfStockByStoreID(ctx context.Context, storeID int64) (int64, error)

	//在庫が足りるときだけ減らす（足りなければ false）
	DecrementStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)
	SetStock(ctx context.Context, productID int64, newStock int64) error
}

// 在庫パッチの履歴保存を約束。
type StockAdjustmentRepository interface {
	Create(ctx context.Context, adj model.StockAdjustment) error
}

package repository

import (
	"context"

	"eshop/internal/domain/model"

	"github.com/shopspring/decimal"
)

// カート本体。顧客登録時に1つ作られ、以後は作り直さない。
type CartRepository interface {
	Create(ctx context.Context, cart *model.ShoppingCart) error
	FindByCustomerID(ctx context.Context, customerID int64) (model.ShoppingCart, error)
	//total_priceは必ず再計算した値で更新する
	UpdateTotalPrice(ctx context.Context, cartID int64, total decimal.Decimal) error
}

// カート明細。
type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	FindByCartAndProduct(ctx context.Context, cartID int64, productID int64) (model.CartItem, error)
	Create(ctx context.Context, item *model.CartItem) error
	//数量とsubtotalをまとめて更新
	Update(ctx context.Context, item model.CartItem) error
	Delete(ctx context.Context, cartItemID int64) error
	//チェックアウト後のカート空化
	DeleteByCartID(ctx context.Context, cartID int64) error
}

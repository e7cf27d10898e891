package repository

import (
	"context"

	repo "eshop/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	users            repo.UserRepository
	customers        repo.CustomerRepository
	stores           repo.StoreRepository
	products         repo.ProductRepository
	carts            repo.CartRepository
	cartItems        repo.CartItemRepository
	orders           repo.OrderRepository
	orderItems       repo.OrderItemRepository
	stockAdjustments repo.StockAdjustmentRepository
}

func (r *txReposGorm) Users() repo.UserRepository                       { return r.users }
func (r *txReposGorm) Customers() repo.CustomerRepository               { return r.customers }
func (r *txReposGorm) Stores() repo.StoreRepository                     { return r.stores }
func (r *txReposGorm) Products() repo.ProductRepository                 { return r.products }
func (r *txReposGorm) Carts() repo.CartRepository                       { return r.carts }
func (r *txReposGorm) CartItems() repo.CartItemRepository               { return r.cartItems }
func (r *txReposGorm) Orders() repo.OrderRepository                     { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository             { return r.orderItems }
func (r *txReposGorm) StockAdjustments() repo.StockAdjustmentRepository { return r.stockAdjustments }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			users:            NewUserGormRepository(tx),
			customers:        NewCustomerGormRepository(tx),
			stores:           NewStoreGormRepository(tx),
			products:         NewProductGormRepository(tx),
			carts:            NewCartGormRepository(tx),
			cartItems:        NewCartItemGormRepository(tx),
			orders:           NewOrderGormRepository(tx),
			orderItems:       NewOrderItemGormRepository(tx),
			stockAdjustments: NewStockAdjustmentGormRepository(tx),
		}
		return fn(r)
	})
}

package usecase_test

import (
	"context"

	"eshop/internal/domain/model"
	repo "eshop/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（usecaseテスト共有）
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepoMock) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type CustomerRepoMock struct{ mock.Mock }

func (m *CustomerRepoMock) Create(ctx context.Context, customer *model.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *CustomerRepoMock) FindByID(ctx context.Context, customerID int64) (model.Customer, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Customer, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepoMock) ExistsByTaxID(ctx context.Context, taxID string) (bool, error) {
	args := m.Called(ctx, taxID)
	return args.Bool(0), args.Error(1)
}

type StoreRepoMock struct{ mock.Mock }

func (m *StoreRepoMock) Create(ctx context.Context, store *model.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

func (m *StoreRepoMock) FindByID(ctx context.Context, storeID int64) (model.Store, error) {
	args := m.Called(ctx, storeID)
	s, _ := args.Get(0).(model.Store)
	return s, args.Error(1)
}

func (m *StoreRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Store, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(model.Store)
	return s, args.Error(1)
}

func (m *StoreRepoMock) ExistsByTaxID(ctx context.Context, taxID string) (bool, error) {
	args := m.Called(ctx, taxID)
	return args.Bool(0), args.Error(1)
}

func (m *StoreRepoMock) List(ctx context.Context) ([]model.Store, error) {
	args := m.Called(ctx)
	stores, _ := args.Get(0).([]model.Store)
	return stores, args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) Create(ctx context.Context, p *model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *ProductRepoMock) ListByStoreID(ctx context.Context, storeID int64) ([]model.Product, error) {
	args := m.Called(ctx, storeID)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *ProductRepoMock) Search(ctx context.Context, q repo.ProductSearchQuery) ([]model.Product, error) {
	args := m.Called(ctx, q)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *ProductRepoMock) ListRecentInStock(ctx context.Context, limit int) ([]model.Product, error) {
	args := m.Called(ctx, limit)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *ProductRepoMock) ListRecommended(ctx context.Context, types []string, brands []string, excludeIDs []int64, limit int) ([]model.Product, error) {
	args := m.Called(ctx, types, brands, excludeIDs, limit)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *ProductRepoMock) CountByStoreID(ctx context.Context, storeID int64) (int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) CountInStockByStoreID(ctx context.Context, storeID int64) (int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) CountOutOfStockByStoreID(ctx context.Context, storeID int64) (int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) DecrementStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *ProductRepoMock) SetStock(ctx context.Context, productID int64, newStock int64) error {
	args := m.Called(ctx, productID, newStock)
	return args.Error(0)
}

type StockAdjustmentRepoMock struct{ mock.Mock }

func (m *StockAdjustmentRepoMock) Create(ctx context.Context, adj model.StockAdjustment) error {
	args := m.Called(ctx, adj)
	return args.Error(0)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) Create(ctx context.Context, cart *model.ShoppingCart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *CartRepoMock) FindByCustomerID(ctx context.Context, customerID int64) (model.ShoppingCart, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(model.ShoppingCart)
	return c, args.Error(1)
}

func (m *CartRepoMock) UpdateTotalPrice(ctx context.Context, cartID int64, total decimal.Decimal) error {
	args := m.Called(ctx, cartID, total)
	return args.Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) FindByCartAndProduct(ctx context.Context, cartID int64, productID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartID, productID)
	item, _ := args.Get(0).(model.CartItem)
	return item, args.Error(1)
}

func (m *CartItemRepoMock) Create(ctx context.Context, item *model.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *CartItemRepoMock) Update(ctx context.Context, item model.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *CartItemRepoMock) Delete(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByCartID(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByCustomerID(ctx context.Context, customerID int64, limit int) ([]model.Order, error) {
	args := m.Called(ctx, customerID, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) ListByStoreID(ctx context.Context, storeID int64, limit int) ([]model.Order, error) {
	args := m.Called(ctx, storeID, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) CountByCustomerID(ctx context.Context, customerID int64) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) CountByCustomerIDAndStatus(ctx context.Context, customerID int64, status model.OrderStatus) (int64, error) {
	args := m.Called(ctx, customerID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) CountDistinctStoresByCustomerID(ctx context.Context, customerID int64) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) SumTotalPriceByCustomerID(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, customerID)
	sum, _ := args.Get(0).(decimal.Decimal)
	return sum, args.Error(1)
}

func (m *OrderRepoMock) SumItemQuantitiesByCustomerID(ctx context.Context, customerID int64) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) DistinctProductTypesByCustomerID(ctx context.Context, customerID int64) ([]string, error) {
	args := m.Called(ctx, customerID)
	types, _ := args.Get(0).([]string)
	return types, args.Error(1)
}

func (m *OrderRepoMock) DistinctProductBrandsByCustomerID(ctx context.Context, customerID int64) ([]string, error) {
	args := m.Called(ctx, customerID)
	brands, _ := args.Get(0).([]string)
	return brands, args.Error(1)
}

func (m *OrderRepoMock) DistinctProductIDsByCustomerID(ctx context.Context, customerID int64) ([]int64, error) {
	args := m.Called(ctx, customerID)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

func (m *OrderRepoMock) CountByStoreID(ctx context.Context, storeID int64) (int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) CountByStoreIDAndStatus(ctx context.Context, storeID int64, status model.OrderStatus) (int64, error) {
	args := m.Called(ctx, storeID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) CountDistinctCustomersByStoreID(ctx context.Context, storeID int64) (int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) SumTotalPriceByStoreID(ctx context.Context, storeID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, storeID)
	sum, _ := args.Get(0).(decimal.Decimal)
	return sum, args.Error(1)
}

func (m *OrderRepoMock) SumItemQuantitiesByStoreID(ctx context.Context, storeID int64) (int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(int64), args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) Create(ctx context.Context, item *model.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

// =====================
// TransactionManagerのテスト実装。
// トランザクションは張らず、同じmock束でfnを呼ぶだけ。
// =====================

type TxReposMock struct {
	users            *UserRepoMock
	customers        *CustomerRepoMock
	stores           *StoreRepoMock
	products         *ProductRepoMock
	carts            *CartRepoMock
	cartItems        *CartItemRepoMock
	orders           *OrderRepoMock
	orderItems       *OrderItemRepoMock
	stockAdjustments *StockAdjustmentRepoMock
}

func newTxReposMock() *TxReposMock {
	return &TxReposMock{
		users:            new(UserRepoMock),
		customers:        new(CustomerRepoMock),
		stores:           new(StoreRepoMock),
		products:         new(ProductRepoMock),
		carts:            new(CartRepoMock),
		cartItems:        new(CartItemRepoMock),
		orders:           new(OrderRepoMock),
		orderItems:       new(OrderItemRepoMock),
		stockAdjustments: new(StockAdjustmentRepoMock),
	}
}

func (r *TxReposMock) Users() repo.UserRepository                       { return r.users }
func (r *TxReposMock) Customers() repo.CustomerRepository               { return r.customers }
func (r *TxReposMock) Stores() repo.StoreRepository                     { return r.stores }
func (r *TxReposMock) Products() repo.ProductRepository                 { return r.products }
func (r *TxReposMock) Carts() repo.CartRepository                       { return r.carts }
func (r *TxReposMock) CartItems() repo.CartItemRepository               { return r.cartItems }
func (r *TxReposMock) Orders() repo.OrderRepository                     { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository             { return r.orderItems }
func (r *TxReposMock) StockAdjustments() repo.StockAdjustmentRepository { return r.stockAdjustments }

type TxManagerMock struct {
	repos *TxReposMock
}

func newTxManagerMock(repos *TxReposMock) *TxManagerMock {
	return &TxManagerMock{repos: repos}
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}

// decimal比較用のマッチャ（内部表現の違いを無視する）
func decimalEq(expected string) interface{} {
	want := decimal.RequireFromString(expected)
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(want)
	})
}

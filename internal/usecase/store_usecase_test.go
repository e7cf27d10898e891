package usecase_test

import (
	"context"
	"testing"

	"eshop/internal/domain/model"
	repo "eshop/internal/repository"
	"eshop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStoreUsecase_GetStoreStats(t *testing.T) {
	ctx := context.Background()

	r := newTxReposMock()
	uc := usecase.NewStoreUsecase(newTxManagerMock(r))

	r.stores.On("FindByUserID", mock.Anything, int64(8)).Return(model.Store{ID: 301, Name: "Tech World", UserID: 8}, nil)
	r.products.On("CountByStoreID", mock.Anything, int64(301)).Return(int64(12), nil)
	r.products.On("CountInStockByStoreID", mock.Anything, int64(301)).Return(int64(9), nil)
	r.products.On("CountOutOfStockByStoreID", mock.Anything, int64(301)).Return(int64(3), nil)
	r.orders.On("CountByStoreID", mock.Anything, int64(301)).Return(int64(20), nil)
	r.orders.On("CountByStoreIDAndStatus", mock.Anything, int64(301), model.OrderStatusCompleted).Return(int64(20), nil)
	r.orders.On("CountDistinctCustomersByStoreID", mock.Anything, int64(301)).Return(int64(6), nil)
	r.orders.On("SumTotalPriceByStoreID", mock.Anything, int64(301)).Return(dec("4321.50"), nil)
	r.orders.On("SumItemQuantitiesByStoreID", mock.Anything, int64(301)).Return(int64(41), nil)

	out, err := uc.GetStoreStats(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(12), out.TotalProducts)
	assert.Equal(t, int64(9), out.ProductsInStock)
	assert.Equal(t, int64(3), out.ProductsOutOfStock)
	assert.Equal(t, int64(20), out.TotalOrders)
	assert.Equal(t, int64(6), out.DistinctCustomers)
	assert.True(t, out.TotalRevenue.Equal(dec("4321.50")))
	assert.Equal(t, int64(41), out.ItemsSold)
}

func TestStoreUsecase_GetStore_NotFound(t *testing.T) {
	r := newTxReposMock()
	uc := usecase.NewStoreUsecase(newTxManagerMock(r))

	r.stores.On("FindByID", mock.Anything, int64(404)).Return(model.Store{}, repo.ErrNotFound)

	_, err := uc.GetStore(context.Background(), 404)
	require.Error(t, err)

	ue, ok := usecase.AsError(err)
	require.True(t, ok)
	assert.Equal(t, usecase.KindNotFound, ue.Kind)
}

func TestStoreUsecase_ListStores_WithProductCounts(t *testing.T) {
	ctx := context.Background()

	r := newTxReposMock()
	uc := usecase.NewStoreUsecase(newTxManagerMock(r))

	r.stores.On("List", mock.Anything).Return([]model.Store{
		{ID: 301, Name: "Tech World", Owner: "Nikos"},
		{ID: 302, Name: "Gadget Hub", Owner: "Eleni"},
	}, nil)
	r.products.On("CountByStoreID", mock.Anything, int64(301)).Return(int64(12), nil)
	r.products.On("CountByStoreID", mock.Anything, int64(302)).Return(int64(0), nil)

	out, err := uc.ListStores(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int64(12), out[0].ProductCount)
	assert.Equal(t, int64(0), out[1].ProductCount)
}

func TestCustomerUsecase_GetCustomerStats(t *testing.T) {
	ctx := context.Background()

	r := newTxReposMock()
	uc := usecase.NewCustomerUsecase(newTxManagerMock(r))

	r.customers.On("FindByUserID", mock.Anything, int64(7)).Return(model.Customer{ID: 1, FirstName: "Maria", LastName: "P", UserID: 7}, nil)
	r.carts.On("FindByCustomerID", mock.Anything, int64(1)).Return(model.ShoppingCart{ID: 10, CustomerID: 1, TotalPrice: dec("59.97")}, nil)
	r.cartItems.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 100, Quantity: 2, Subtotal: dec("39.98")},
		{ID: 101, Quantity: 1, Subtotal: dec("19.99")},
	}, nil)
	r.orders.On("CountByCustomerID", mock.Anything, int64(1)).Return(int64(4), nil)
	r.orders.On("CountByCustomerIDAndStatus", mock.Anything, int64(1), model.OrderStatusCompleted).Return(int64(4), nil)
	r.orders.On("CountDistinctStoresByCustomerID", mock.Anything, int64(1)).Return(int64(2), nil)
	r.orders.On("SumTotalPriceByCustomerID", mock.Anything, int64(1)).Return(dec("1234.56"), nil)
	r.orders.On("SumItemQuantitiesByCustomerID", mock.Anything, int64(1)).Return(int64(9), nil)

	out, err := uc.GetCustomerStats(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.CartItemCount)
	assert.True(t, out.CartTotal.Equal(dec("59.97")))
	assert.Equal(t, int64(4), out.TotalOrders)
	assert.Equal(t, int64(2), out.DistinctStores)
	assert.True(t, out.TotalSpent.Equal(dec("1234.56")))
	assert.Equal(t, int64(9), out.ItemsPurchased)
}

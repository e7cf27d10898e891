package repository

import (
	"context"
	"errors"

	"eshop/internal/domain/model"
	repo "eshop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

// DI
func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).First(&o, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) ListByCustomerID(ctx context.Context, customerID int64, limit int) ([]model.Order, error) {
	tx := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("order_date desc").Order("id desc")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var orders []model.Order
	if err := tx.Find(&orders).Error; err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

func (r *OrderGormRepository) ListByStoreID(ctx context.Context, storeID int64, limit int) ([]model.Order, error) {
	tx := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("order_date desc").Order("id desc")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var orders []model.Order
	if err := tx.Find(&orders).Error; err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

func (r *OrderGormRepository) CountByCustomerID(ctx context.Context, customerID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	return count, err
}

func (r *OrderGormRepository) CountByCustomerIDAndStatus(ctx context.Context, customerID int64, status model.OrderStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("customer_id = ? AND status = ?", customerID, status).
		Count(&count).Error
	return count, err
}

func (r *OrderGormRepository) CountDistinctStoresByCustomerID(ctx context.Context, customerID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("customer_id = ?", customerID).
		Distinct("store_id").
		Count(&count).Error
	return count, err
}

func (r *OrderGormRepository) SumTotalPriceByCustomerID(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("customer_id = ?", customerID).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *OrderGormRepository) SumItemQuantitiesByCustomerID(ctx context.Context, customerID int64) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.customer_id = ?", customerID).
		Select("COALESCE(SUM(order_items.quantity), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *OrderGormRepository) DistinctProductTypesByCustomerID(ctx context.Context, customerID int64) ([]string, error) {
	var types []string
	err := r.db.WithContext(ctx).Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.customer_id = ?", customerID).
		Distinct().
		Pluck("products.type", &types).Error
	if err != nil {
		return []string{}, err
	}
	return types, nil
}

func (r *OrderGormRepository) DistinctProductBrandsByCustomerID(ctx context.Context, customerID int64) ([]string, error) {
	var brands []string
	err := r.db.WithContext(ctx).Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.customer_id = ?", customerID).
		Distinct().
		Pluck("products.brand", &brands).Error
	if err != nil {
		return []string{}, err
	}
	return brands, nil
}

func (r *OrderGormRepository) DistinctProductIDsByCustomerID(ctx context.Context, customerID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.customer_id = ?", customerID).
		Distinct().
		Pluck("order_items.product_id", &ids).Error
	if err != nil {
		return []int64{}, err
	}
	return ids, nil
}

func (r *OrderGormRepository) CountByStoreID(ctx context.Context, storeID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("store_id = ?", storeID).
		Count(&count).Error
	return count, err
}

func (r *OrderGormRepository) CountByStoreIDAndStatus(ctx context.Context, storeID int64, status model.OrderStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("store_id = ? AND status = ?", storeID, status).
		Count(&count).Error
	return count, err
}

func (r *OrderGormRepository) CountDistinctCustomersByStoreID(ctx context.Context, storeID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("store_id = ?", storeID).
		Distinct("customer_id").
		Count(&count).Error
	return count, err
}

func (r *OrderGormRepository) SumTotalPriceByStoreID(ctx context.Context, storeID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("store_id = ?", storeID).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *OrderGormRepository) SumItemQuantitiesByStoreID(ctx context.Context, storeID int64) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.store_id = ?", storeID).
		Select("COALESCE(SUM(order_items.quantity), 0)").
		Scan(&sum).Error
	return sum, err
}

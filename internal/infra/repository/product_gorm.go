package repository

import (
	"context"
	"errors"
	"strings"

	"eshop/internal/domain/model"
	repo "eshop/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func (r *ProductGormRepository) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductGormRepository) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"title":          p.Title,
		"type":           p.Type,
		"brand":          p.Brand,
		"description":    p.Description,
		"price":          p.Price,
		"stock_quantity": p.StockQuantity,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) Delete(ctx context.Context, productID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, productID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) ListByStoreID(ctx context.Context, storeID int64) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("id asc").
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// 任意フィルタのAND結合。空のフィルタは条件を足さない。
func (r *ProductGormRepository) Search(ctx context.Context, q repo.ProductSearchQuery) ([]model.Product, error) {
	tx := r.db.WithContext(ctx).Model(&model.Product{})

	if s := strings.TrimSpace(q.Title); s != "" {
		tx = tx.Where("title ILIKE ?", "%"+s+"%")
	}
	if s := strings.TrimSpace(q.Type); s != "" {
		tx = tx.Where("type ILIKE ?", "%"+s+"%")
	}
	if s := strings.TrimSpace(q.Brand); s != "" {
		tx = tx.Where("brand ILIKE ?", "%"+s+"%")
	}
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}
	if q.StoreID != nil {
		tx = tx.Where("store_id = ?", *q.StoreID)
	}

	var products []model.Product
	if err := tx.Order("id asc").Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

func (r *ProductGormRepository) ListRecentInStock(ctx context.Context, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("stock_quantity > 0").
		Order("id desc").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// 過去に買ったtype/brandに合う在庫あり商品。購入済み商品は除く。新しい順。
func (r *ProductGormRepository) ListRecommended(ctx context.Context, types []string, brands []string, excludeIDs []int64, limit int) ([]model.Product, error) {
	//IN句が空にならないように番兵を入れる
	if len(types) == 0 {
		types = []string{""}
	}
	if len(brands) == 0 {
		brands = []string{""}
	}
	if len(excludeIDs) == 0 {
		excludeIDs = []int64{-1}
	}

	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("(type IN ? OR brand IN ?)", types, brands).
		Where("id NOT IN ?", excludeIDs).
		Where("stock_quantity > 0").
		Order("id desc").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

func (r *ProductGormRepository) CountByStoreID(ctx context.Context, storeID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("store_id = ?", storeID).
		Count(&count).Error
	return count, err
}

func (r *ProductGormRepository) CountInStockByStoreID(ctx context.Context, storeID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("store_id = ? AND stock_quantity > 0", storeID).
		Count(&count).Error
	return count, err
}

func (r *ProductGormRepository) CountOutOfStockByStoreID(ctx context.Context, storeID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("store_id = ? AND stock_quantity = 0", storeID).
		Count(&count).Error
	return count, err
}

// 在庫が足りるときだけ減らす。条件付きUPDATEなので同時実行でも0未満にならない。
func (r *ProductGormRepository) DecrementStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND stock_quantity >= ?", productID, qty).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

func (r *ProductGormRepository) SetStock(ctx context.Context, productID int64, newStock int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Update("stock_quantity", newStock)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

type StockAdjustmentGormRepository struct {
	db *gorm.DB
}

func NewStockAdjustmentGormRepository(db *gorm.DB) *StockAdjustmentGormRepository {
	return &StockAdjustmentGormRepository{db: db}
}

func (r *StockAdjustmentGormRepository) Create(ctx context.Context, adj model.StockAdjustment) error {
	return r.db.WithContext(ctx).Create(&adj).Error
}

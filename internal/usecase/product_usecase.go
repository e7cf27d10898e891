package usecase

import (
	"context"

	"eshop/internal/domain/model"
	repo "eshop/internal/repository"

	"github.com/shopspring/decimal"
)

// カタログ管理・検索・おすすめの業務ロジック。
// 更新系はストア所有チェックを必ず通す。
type ProductUsecase struct {
	tx repo.TransactionManager
}

func NewProductUsecase(tx repo.TransactionManager) *ProductUsecase {
	return &ProductUsecase{tx: tx}
}

type ProductRequest struct {
	Title         string          `json:"title"`
	Type          string          `json:"type"`
	Brand         string          `json:"brand"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int64           `json:"stock_quantity"`
}

type ProductOutput struct {
	ProductID     int64           `json:"product_id"`
	Title         string          `json:"title"`
	Type          string          `json:"type"`
	Brand         string          `json:"brand"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int64           `json:"stock_quantity"`
	StoreID       int64           `json:"store_id"`
	StoreName     string          `json:"store_name"`
}

func (u *ProductUsecase) AddProduct(ctx context.Context, userID int64, req ProductRequest) (ProductOutput, error) {
	if err := validateProductRequest(req); err != nil {
		return ProductOutput{}, err
	}

	var out ProductOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		store, err := resolveStore(ctx, r, userID)
		if err != nil {
			return err
		}

		p := &model.Product{
			Title:         req.Title,
			Type:          req.Type,
			Brand:         req.Brand,
			Description:   req.Description,
			Price:         req.Price,
			StockQuantity: req.StockQuantity,
			StoreID:       store.ID,
		}
		if err := r.Products().Create(ctx, p); err != nil {
			return NewInternal("db error")
		}

		out = toProductOutput(*p, store.Name)
		return nil
	})

	if err != nil {
		return ProductOutput{}, err
	}
	return out, nil
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, userID int64, productID int64, req ProductRequest) (ProductOutput, error) {
	if err := validateProductRequest(req); err != nil {
		return ProductOutput{}, err
	}

	var out ProductOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		store, p, err := resolveOwnedProduct(ctx, r, userID, productID)
		if err != nil {
			return err
		}

		p.Title = req.Title
		p.Type = req.Type
		p.Brand = req.Brand
		p.Description = req.Description
		p.Price = req.Price
		p.StockQuantity = req.StockQuantity

		if err := r.Products().Update(ctx, p); err != nil {
			return NewInternal("db error")
		}

		out = toProductOutput(p, store.Name)
		return nil
	})

	if err != nil {
		return ProductOutput{}, err
	}
	return out, nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, userID int64, productID int64) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		_, p, err := resolveOwnedProduct(ctx, r, userID, productID)
		if err != nil {
			return err
		}

		if err := r.Products().Delete(ctx, p.ID); err != nil {
			return NewInternal("db error")
		}
		return nil
	})
}

// UpdateProductStock は在庫数を置き換え、差分を履歴として同一トランザクションで残す。
func (u *ProductUsecase) UpdateProductStock(ctx context.Context, userID int64, productID int64, newStock int64) (ProductOutput, error) {
	if newStock < 0 {
		return ProductOutput{}, NewBadRequest("Stock quantity cannot be negative")
	}

	var out ProductOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		store, p, err := resolveOwnedProduct(ctx, r, userID, productID)
		if err != nil {
			return err
		}

		if err := r.Products().SetStock(ctx, p.ID, newStock); err != nil {
			return NewInternal("db error")
		}

		adj := model.StockAdjustment{
			ProductID: p.ID,
			StoreID:   store.ID,
			Delta:     newStock - p.StockQuantity,
		}
		if err := r.StockAdjustments().Create(ctx, adj); err != nil {
			return NewInternal("db error")
		}

		p.StockQuantity = newStock
		out = toProductOutput(p, store.Name)
		return nil
	})

	if err != nil {
		return ProductOutput{}, err
	}
	return out, nil
}

func (u *ProductUsecase) GetProductByID(ctx context.Context, productID int64) (ProductOutput, error) {
	var out ProductOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, productID)
		if err == repo.ErrNotFound {
			return NewNotFound("Product not found")
		}
		if err != nil {
			return NewInternal("db error")
		}

		out = toProductOutput(p, storeName(ctx, r, p.StoreID))
		return nil
	})

	if err != nil {
		return ProductOutput{}, err
	}
	return out, nil
}

// GetStoreProducts はログイン中のストア自身の商品一覧。
func (u *ProductUsecase) GetStoreProducts(ctx context.Context, userID int64) ([]ProductOutput, error) {
	var outs []ProductOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		store, err := resolveStore(ctx, r, userID)
		if err != nil {
			return err
		}

		products, err := r.Products().ListByStoreID(ctx, store.ID)
		if err != nil {
			return NewInternal("db error")
		}

		outs = make([]ProductOutput, 0, len(products))
		for _, p := range products {
			outs = append(outs, toProductOutput(p, store.Name))
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return outs, nil
}

// SearchProducts は任意条件のAND検索。空の条件は無視される。
func (u *ProductUsecase) SearchProducts(ctx context.Context, q repo.ProductSearchQuery) ([]ProductOutput, error) {
	if q.MinPrice != nil && q.MaxPrice != nil && q.MinPrice.GreaterThan(*q.MaxPrice) {
		return nil, NewBadRequest("Min price cannot exceed max price")
	}

	var outs []ProductOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		products, err := r.Products().Search(ctx, q)
		if err != nil {
			return NewInternal("db error")
		}

		outs = make([]ProductOutput, 0, len(products))
		for _, p := range products {
			outs = append(outs, toProductOutput(p, storeName(ctx, r, p.StoreID)))
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return outs, nil
}

// GetRecommendations は購入履歴のタイプ・ブランドに寄せたおすすめを返す。
// 履歴が無いときだけ新着の在庫あり商品に落とす。候補ゼロはそのまま空で返す。
func (u *ProductUsecase) GetRecommendations(ctx context.Context, userID int64, limit int) ([]ProductOutput, error) {
	if limit < 1 {
		return nil, NewBadRequest("invalid limit")
	}

	var outs []ProductOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		customer, err := r.Customers().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewNotFound("Customer profile not found")
		}
		if err != nil {
			return NewInternal("db error")
		}

		types, err := r.Orders().DistinctProductTypesByCustomerID(ctx, customer.ID)
		if err != nil {
			return NewInternal("db error")
		}
		brands, err := r.Orders().DistinctProductBrandsByCustomerID(ctx, customer.ID)
		if err != nil {
			return NewInternal("db error")
		}
		purchasedIDs, err := r.Orders().DistinctProductIDsByCustomerID(ctx, customer.ID)
		if err != nil {
			return NewInternal("db error")
		}

		var products []model.Product
		if len(types) == 0 && len(brands) == 0 {
			products, err = r.Products().ListRecentInStock(ctx, limit)
		} else {
			products, err = r.Products().ListRecommended(ctx, types, brands, purchasedIDs, limit)
		}
		if err != nil {
			return NewInternal("db error")
		}

		outs = make([]ProductOutput, 0, len(products))
		for _, p := range products {
			outs = append(outs, toProductOutput(p, storeName(ctx, r, p.StoreID)))
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return outs, nil
}

func validateProductRequest(req ProductRequest) error {
	if req.Title == "" {
		return NewBadRequest("Title is required")
	}
	if req.Price.LessThanOrEqual(decimal.Zero) {
		return NewBadRequest("Price must be positive")
	}
	if req.StockQuantity < 0 {
		return NewBadRequest("Stock quantity cannot be negative")
	}
	return nil
}

// 認証済みユーザーから自分のストアを引く
func resolveStore(ctx context.Context, r repo.TxRepos, userID int64) (model.Store, error) {
	store, err := r.Stores().FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return model.Store{}, NewNotFound("Store profile not found")
	}
	if err != nil {
		return model.Store{}, NewInternal("db error")
	}
	return store, nil
}

// 商品を引いて所有ストアと突き合わせる。他店の商品はForbidden。
func resolveOwnedProduct(ctx context.Context, r repo.TxRepos, userID int64, productID int64) (model.Store, model.Product, error) {
	store, err := resolveStore(ctx, r, userID)
	if err != nil {
		return model.Store{}, model.Product{}, err
	}

	p, err := r.Products().FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Store{}, model.Product{}, NewNotFound("Product not found")
	}
	if err != nil {
		return model.Store{}, model.Product{}, NewInternal("db error")
	}

	if p.StoreID != store.ID {
		return model.Store{}, model.Product{}, NewForbidden("You don't have permission to modify this product")
	}

	return store, p, nil
}

// 表示用。ストアが引けないときは空文字のままにする。
func storeName(ctx context.Context, r repo.TxRepos, storeID int64) string {
	s, err := r.Stores().FindByID(ctx, storeID)
	if err != nil {
		return ""
	}
	return s.Name
}

func toProductOutput(p model.Product, storeName string) ProductOutput {
	return ProductOutput{
		ProductID:     p.ID,
		Title:         p.Title,
		Type:          p.Type,
		Brand:         p.Brand,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		StoreID:       p.StoreID,
		StoreName:     storeName,
	}
}

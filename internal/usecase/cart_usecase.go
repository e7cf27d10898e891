package usecase

import (
	"context"
	"fmt"

	"eshop/internal/domain/model"
	repo "eshop/internal/repository"

	"github.com/shopspring/decimal"
)

// カート操作の業務ロジック。
// カート明細を触った後は必ずtotal_priceを再計算して保存する。
type CartUsecase struct {
	tx repo.TransactionManager
}

func NewCartUsecase(tx repo.TransactionManager) *CartUsecase {
	return &CartUsecase{tx: tx}
}

type CartItemOutput struct {
	CartItemID     int64           `json:"cart_item_id"`
	ProductID      int64           `json:"product_id"`
	ProductTitle   string          `json:"product_title"`
	ProductBrand   string          `json:"product_brand"`
	ProductPrice   decimal.Decimal `json:"product_price"`
	StoreID        int64           `json:"store_id"`
	StoreName      string          `json:"store_name"`
	Quantity       int64           `json:"quantity"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	AvailableStock int64           `json:"available_stock"`
}

type CartOutput struct {
	CartID     int64            `json:"cart_id"`
	Items      []CartItemOutput `json:"items"`
	TotalPrice decimal.Decimal  `json:"total_price"`
}

// GetCart は自分のカートの中身を返す。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartOutput, error) {
	var out CartOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := resolveCart(ctx, r, userID)
		if err != nil {
			return err
		}
		out, err = buildCartOutput(ctx, r, cart)
		return err
	})

	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

// AddProductToCart は商品をカートに入れる。
// 既に同じ商品が入っている場合は数量をマージし、合算後の数量で在庫を検証する。
func (u *CartUsecase) AddProductToCart(ctx context.Context, userID int64, productID int64, quantity int64) (CartOutput, error) {
	if quantity < 1 {
		return CartOutput{}, NewBadRequest("Quantity must be at least 1")
	}

	var out CartOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := resolveCart(ctx, r, userID)
		if err != nil {
			return err
		}

		product, err := r.Products().FindByID(ctx, productID)
		if err == repo.ErrNotFound {
			return NewNotFound("Product not found")
		}
		if err != nil {
			return NewInternal("db error")
		}

		// 追加分単独の在庫チェック。マージ後の合計は下でもう一度見る。
		if product.StockQuantity < quantity {
			return NewInsufficientStock(fmt.Sprintf(
				"Insufficient stock. Available: %d", product.StockQuantity))
		}

		existing, err := r.CartItems().FindByCartAndProduct(ctx, cart.ID, productID)
		switch {
		case err == repo.ErrNotFound:
			item := &model.CartItem{
				CartID:    cart.ID,
				ProductID: productID,
				Quantity:  quantity,
			}
			item.RecalculateSubtotal(product.Price)
			if err := r.CartItems().Create(ctx, item); err != nil {
				return NewInternal("db error")
			}
		case err != nil:
			return NewInternal("db error")
		default:
			merged := existing.Quantity + quantity
			if product.StockQuantity < merged {
				return NewInsufficientStock(fmt.Sprintf(
					"Insufficient stock. Available: %d, In cart: %d",
					product.StockQuantity, existing.Quantity))
			}
			existing.Quantity = merged
			existing.RecalculateSubtotal(product.Price)
			if err := r.CartItems().Update(ctx, existing); err != nil {
				return NewInternal("db error")
			}
		}

		if err := recalcCartTotal(ctx, r, cart.ID); err != nil {
			return err
		}

		cart, err = r.Carts().FindByCustomerID(ctx, cart.CustomerID)
		if err != nil {
			return NewInternal("db error")
		}
		out, err = buildCartOutput(ctx, r, cart)
		return err
	})

	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

// UpdateCartItemQuantity は明細の数量を置き換える。quantityの下限チェックはhandler側。
func (u *CartUsecase) UpdateCartItemQuantity(ctx context.Context, userID int64, productID int64, quantity int64) (CartOutput, error) {
	var out CartOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := resolveCart(ctx, r, userID)
		if err != nil {
			return err
		}

		item, err := r.CartItems().FindByCartAndProduct(ctx, cart.ID, productID)
		if err == repo.ErrNotFound {
			return NewNotFound("Product not in cart")
		}
		if err != nil {
			return NewInternal("db error")
		}

		product, err := r.Products().FindByID(ctx, productID)
		if err == repo.ErrNotFound {
			return NewNotFound("Product not found")
		}
		if err != nil {
			return NewInternal("db error")
		}

		if product.StockQuantity < quantity {
			return NewInsufficientStock(fmt.Sprintf(
				"Insufficient stock. Available: %d", product.StockQuantity))
		}

		item.Quantity = quantity
		item.RecalculateSubtotal(product.Price)
		if err := r.CartItems().Update(ctx, item); err != nil {
			return NewInternal("db error")
		}

		if err := recalcCartTotal(ctx, r, cart.ID); err != nil {
			return err
		}

		cart, err = r.Carts().FindByCustomerID(ctx, cart.CustomerID)
		if err != nil {
			return NewInternal("db error")
		}
		out, err = buildCartOutput(ctx, r, cart)
		return err
	})

	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

// RemoveProductFromCart は商品1種類をカートから外す。
func (u *CartUsecase) RemoveProductFromCart(ctx context.Context, userID int64, productID int64) (CartOutput, error) {
	var out CartOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := resolveCart(ctx, r, userID)
		if err != nil {
			return err
		}

		item, err := r.CartItems().FindByCartAndProduct(ctx, cart.ID, productID)
		if err == repo.ErrNotFound {
			return NewNotFound("Product not in cart")
		}
		if err != nil {
			return NewInternal("db error")
		}

		if err := r.CartItems().Delete(ctx, item.ID); err != nil {
			return NewInternal("db error")
		}

		if err := recalcCartTotal(ctx, r, cart.ID); err != nil {
			return err
		}

		cart, err = r.Carts().FindByCustomerID(ctx, cart.CustomerID)
		if err != nil {
			return NewInternal("db error")
		}
		out, err = buildCartOutput(ctx, r, cart)
		return err
	})

	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

// 認証済みユーザーから自分のカートを引く
func resolveCart(ctx context.Context, r repo.TxRepos, userID int64) (model.ShoppingCart, error) {
	customer, err := r.Customers().FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return model.ShoppingCart{}, NewNotFound("Customer profile not found")
	}
	if err != nil {
		return model.ShoppingCart{}, NewInternal("db error")
	}

	cart, err := r.Carts().FindByCustomerID(ctx, customer.ID)
	if err == repo.ErrNotFound {
		return model.ShoppingCart{}, NewNotFound("Shopping cart not found")
	}
	if err != nil {
		return model.ShoppingCart{}, NewInternal("db error")
	}
	return cart, nil
}

// 明細のsubtotal合計でtotal_priceを置き換える
func recalcCartTotal(ctx context.Context, r repo.TxRepos, cartID int64) error {
	items, err := r.CartItems().ListByCartID(ctx, cartID)
	if err != nil {
		return NewInternal("db error")
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal)
	}

	if err := r.Carts().UpdateTotalPrice(ctx, cartID, total); err != nil {
		return NewInternal("db error")
	}
	return nil
}

func buildCartOutput(ctx context.Context, r repo.TxRepos, cart model.ShoppingCart) (CartOutput, error) {
	items, err := r.CartItems().ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartOutput{}, NewInternal("db error")
	}

	itemOuts := make([]CartItemOutput, 0, len(items))
	for _, item := range items {
		out := CartItemOutput{
			CartItemID: item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			Subtotal:   item.Subtotal,
		}

		p, err := r.Products().FindByID(ctx, item.ProductID)
		if err == nil {
			out.ProductTitle = p.Title
			out.ProductBrand = p.Brand
			out.ProductPrice = p.Price
			out.StoreID = p.StoreID
			out.AvailableStock = p.StockQuantity
			if s, err := r.Stores().FindByID(ctx, p.StoreID); err == nil {
				out.StoreName = s.Name
			}
		} else if err != repo.ErrNotFound {
			return CartOutput{}, NewInternal("db error")
		}

		itemOuts = append(itemOuts, out)
	}

	return CartOutput{
		CartID:     cart.ID,
		Items:      itemOuts,
		TotalPrice: cart.TotalPrice,
	}, nil
}

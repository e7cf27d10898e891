package usecase

import (
	"context"
	"fmt"
	"time"

	"eshop/internal/domain/model"
	repo "eshop/internal/repository"

	"github.com/shopspring/decimal"
)

// チェックアウトと注文参照の業務ロジック。
// 複数アグリゲート（カート・商品・注文）に触る唯一のトランザクション境界。
type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type OrderItemOutput struct {
	OrderItemID     int64           `json:"order_item_id"`
	ProductID       int64           `json:"product_id"`
	ProductTitle    string          `json:"product_title"`
	ProductBrand    string          `json:"product_brand"`
	Quantity        int64           `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

type OrderOutput struct {
	OrderID      int64             `json:"order_id"`
	CustomerID   int64             `json:"customer_id"`
	CustomerName string            `json:"customer_name"`
	StoreID      int64             `json:"store_id"`
	StoreName    string            `json:"store_name"`
	TotalPrice   decimal.Decimal   `json:"total_price"`
	OrderDate    time.Time         `json:"order_date"`
	Status       string            `json:"status"`
	Items        []OrderItemOutput `json:"items"`
}

// チェックアウト1明細分。商品とストアを先読みして持ち回る。
type checkoutLine struct {
	item    model.CartItem
	product model.Product
	store   model.Store
}

// Checkout はカートをストアごとの注文に変換する。
// 全明細の在庫検証が通ってからでないと一切書き込まない（全か無か）。
func (u *OrderUsecase) Checkout(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return nil, NewForbidden("unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		customer, err := r.Customers().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewNotFound("Customer profile not found")
		}
		if err != nil {
			return NewInternal("db error")
		}

		cart, err := r.Carts().FindByCustomerID(ctx, customer.ID)
		if err == repo.ErrNotFound {
			return NewNotFound("Shopping cart not found")
		}
		if err != nil {
			return NewInternal("db error")
		}

		items, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewInternal("db error")
		}
		if len(items) == 0 {
			return NewBadRequest("Cart is empty")
		}

		//明細ごとに商品と所属ストアを先読みする
		lines := make([]checkoutLine, 0, len(items))
		for _, item := range items {
			p, err := r.Products().FindByID(ctx, item.ProductID)
			if err == repo.ErrNotFound {
				return NewNotFound(fmt.Sprintf("Product not found: %d", item.ProductID))
			}
			if err != nil {
				return NewInternal("db error")
			}

			s, err := r.Stores().FindByID(ctx, p.StoreID)
			if err == repo.ErrNotFound {
				return NewNotFound(fmt.Sprintf("Store not found: %d", p.StoreID))
			}
			if err != nil {
				return NewInternal("db error")
			}

			lines = append(lines, checkoutLine{item: item, product: p, store: s})
		}

		//検証は書き込みより先。どれか1つでも足りなければ注文は1件も作らない。
		for _, ln := range lines {
			if ln.product.StockQuantity < ln.item.Quantity {
				return NewInsufficientStock(fmt.Sprintf(
					"Insufficient stock for product: %s. Available: %d, Requested: %d",
					ln.product.Title, ln.product.StockQuantity, ln.item.Quantity,
				))
			}
		}

		//ストアごとにグループ化。順番はカート内の初出順で固定する。
		storeIDs := make([]int64, 0)
		groups := make(map[int64][]checkoutLine)
		for _, ln := range lines {
			if _, ok := groups[ln.store.ID]; !ok {
				storeIDs = append(storeIDs, ln.store.ID)
			}
			groups[ln.store.ID] = append(groups[ln.store.ID], ln)
		}

		now := time.Now()
		outs = make([]OrderOutput, 0, len(storeIDs))

		for _, storeID := range storeIDs {
			group := groups[storeID]

			total := decimal.Zero
			for _, ln := range group {
				total = total.Add(ln.item.Subtotal)
			}

			order := &model.Order{
				CustomerID: customer.ID,
				StoreID:    storeID,
				TotalPrice: total,
				Status:     model.OrderStatusCompleted,
				OrderDate:  now,
			}
			if err := r.Orders().Create(ctx, order); err != nil {
				return NewInternal("db error")
			}

			itemOuts := make([]OrderItemOutput, 0, len(group))
			for _, ln := range group {
				//価格は注文時点の商品価格でスナップショット
				oi := &model.OrderItem{
					OrderID:         order.ID,
					ProductID:       ln.product.ID,
					Quantity:        ln.item.Quantity,
					PriceAtPurchase: ln.product.Price,
					Subtotal:        ln.product.Price.Mul(decimal.NewFromInt(ln.item.Quantity)),
				}
				if err := r.OrderItems().Create(ctx, oi); err != nil {
					return NewInternal("db error")
				}

				ok, err := r.Products().DecrementStockIfEnough(ctx, ln.product.ID, ln.item.Quantity)
				if err != nil {
					return NewInternal("db error")
				}
				if !ok {
					//検証後に並行して在庫が減ったケース。全ロールバックさせる。
					return NewInsufficientStock(fmt.Sprintf(
						"Insufficient stock for product: %s. Available: %d, Requested: %d",
						ln.product.Title, ln.product.StockQuantity, ln.item.Quantity,
					))
				}

				itemOuts = append(itemOuts, OrderItemOutput{
					OrderItemID:     oi.ID,
					ProductID:       ln.product.ID,
					ProductTitle:    ln.product.Title,
					ProductBrand:    ln.product.Brand,
					Quantity:        oi.Quantity,
					PriceAtPurchase: oi.PriceAtPurchase,
					Subtotal:        oi.Subtotal,
				})
			}

			outs = append(outs, OrderOutput{
				OrderID:      order.ID,
				CustomerID:   customer.ID,
				CustomerName: customer.FullName(),
				StoreID:      storeID,
				StoreName:    group[0].store.Name,
				TotalPrice:   total,
				OrderDate:    now,
				Status:       string(model.OrderStatusCompleted),
				Items:        itemOuts,
			})
		}

		//カートを空にしてtotalを0に戻す
		if err := r.CartItems().DeleteByCartID(ctx, cart.ID); err != nil {
			return NewInternal("db error")
		}
		if err := r.Carts().UpdateTotalPrice(ctx, cart.ID, decimal.Zero); err != nil {
			return NewInternal("db error")
		}

		return nil
	})

	if err != nil {
		return nil, err
	}
	return outs, nil
}

// 自分の注文一覧（注文日の新しい順）
func (u *OrderUsecase) GetCustomerOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	return u.listCustomerOrders(ctx, userID, 0)
}

// 直近limit件
func (u *OrderUsecase) GetRecentCustomerOrders(ctx context.Context, userID int64, limit int) ([]OrderOutput, error) {
	if limit < 1 {
		return nil, NewBadRequest("invalid limit")
	}
	return u.listCustomerOrders(ctx, userID, limit)
}

func (u *OrderUsecase) listCustomerOrders(ctx context.Context, userID int64, limit int) ([]OrderOutput, error) {
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		customer, err := r.Customers().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewNotFound("Customer profile not found")
		}
		if err != nil {
			return NewInternal("db error")
		}

		orders, err := r.Orders().ListByCustomerID(ctx, customer.ID, limit)
		if err != nil {
			return NewInternal("db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			out, err := buildOrderOutput(ctx, r, o)
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

// ストア側の注文一覧（注文日の新しい順）。limit <= 0 で全件。
func (u *OrderUsecase) GetStoreOrders(ctx context.Context, userID int64, limit int) ([]OrderOutput, error) {
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		store, err := r.Stores().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewNotFound("Store profile not found")
		}
		if err != nil {
			return NewInternal("db error")
		}

		orders, err := r.Orders().ListByStoreID(ctx, store.ID, limit)
		if err != nil {
			return NewInternal("db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			out, err := buildOrderOutput(ctx, r, o)
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

// 注文詳細。顧客は自分の注文しか見られない。
// ストア側の所有チェックは参照実装に合わせて行わない。
func (u *OrderUsecase) GetOrderByID(ctx context.Context, orderID int64, userID int64, role model.Role) (OrderOutput, error) {
	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewNotFound("Order not found")
		}
		if err != nil {
			return NewInternal("db error")
		}

		if role == model.RoleCustomer {
			customer, err := r.Customers().FindByUserID(ctx, userID)
			if err == repo.ErrNotFound {
				return NewNotFound("Customer profile not found")
			}
			if err != nil {
				return NewInternal("db error")
			}
			if order.CustomerID != customer.ID {
				return NewForbidden("You don't have permission to view this order")
			}
		}

		out, err = buildOrderOutput(ctx, r, order)
		return err
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 保存済みOrderからレスポンスを組み立てる。明細の商品名・ブランドは現在のカタログから引く。
func buildOrderOutput(ctx context.Context, r repo.TxRepos, order model.Order) (OrderOutput, error) {
	customer, err := r.Customers().FindByID(ctx, order.CustomerID)
	if err != nil && err != repo.ErrNotFound {
		return OrderOutput{}, NewInternal("db error")
	}

	store, err := r.Stores().FindByID(ctx, order.StoreID)
	if err != nil && err != repo.ErrNotFound {
		return OrderOutput{}, NewInternal("db error")
	}

	items, err := r.OrderItems().ListByOrderID(ctx, order.ID)
	if err != nil {
		return OrderOutput{}, NewInternal("db error")
	}

	itemOuts := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		out := OrderItemOutput{
			OrderItemID:     it.ID,
			ProductID:       it.ProductID,
			Quantity:        it.Quantity,
			PriceAtPurchase: it.PriceAtPurchase,
			Subtotal:        it.Subtotal,
		}

		//商品が消えていても注文履歴は出す（タイトル等は空になる）
		p, err := r.Products().FindByID(ctx, it.ProductID)
		if err == nil {
			out.ProductTitle = p.Title
			out.ProductBrand = p.Brand
		} else if err != repo.ErrNotFound {
			return OrderOutput{}, NewInternal("db error")
		}

		itemOuts = append(itemOuts, out)
	}

	return OrderOutput{
		OrderID:      order.ID,
		CustomerID:   order.CustomerID,
		CustomerName: customer.FullName(),
		StoreID:      order.StoreID,
		StoreName:    store.Name,
		TotalPrice:   order.TotalPrice,
		OrderDate:    order.OrderDate,
		Status:       string(order.Status),
		Items:        itemOuts,
	}, nil
}

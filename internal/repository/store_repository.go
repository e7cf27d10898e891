package repository

import (
	"context"

	"eshop/internal/domain/model"
)

type StoreRepository interface {
	Create(ctx context.Context, store *model.Store) error
	FindByID(ctx context.Context, storeID int64) (model.Store, error)
	//認証済みユーザーからストアプロフィールを引く
	FindByUserID(ctx context.Context, userID int64) (model.Store, error)
	ExistsByTaxID(ctx context.Context, taxID string) (bool, error)
	List(ctx context.Context) ([]model.Store, error)
}

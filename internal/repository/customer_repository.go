package repository

import (
	"context"

	"eshop/internal/domain/model"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	FindByID(ctx context.Context, customerID int64) (model.Customer, error)
	//認証済みユーザーから顧客プロフィールを引く
	FindByUserID(ctx context.Context, userID int64) (model.Customer, error)
	ExistsByTaxID(ctx context.Context, taxID string) (bool, error)
}

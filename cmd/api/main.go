package main

import (
	"log"

	"eshop/internal/config"
	"eshop/internal/domain/model"
	"eshop/internal/handler"
	"eshop/internal/infra/db"
	infraRepo "eshop/internal/infra/repository"
	"eshop/internal/metrics"
	"eshop/internal/server"
	"eshop/internal/usecase"
	"eshop/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatalf("db: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Customer{},
		&model.Store{},
		&model.Product{},
		&model.ShoppingCart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.StockAdjustment{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//全usecaseはTransactionManager経由でrepositoryに触る
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	authUC := usecase.NewAuthUsecase(cfg, txManager, validator.NewAuthValidator())
	cartUC := usecase.NewCartUsecase(txManager)
	orderUC := usecase.NewOrderUsecase(txManager)
	productUC := usecase.NewProductUsecase(txManager)
	storeUC := usecase.NewStoreUsecase(txManager)
	customerUC := usecase.NewCustomerUsecase(txManager)

	h := server.Handlers{
		Auth:     handler.NewAuthHandler(authUC),
		Cart:     handler.NewCartHandler(cartUC),
		Order:    handler.NewOrderHandler(orderUC),
		Product:  handler.NewProductHandler(productUC),
		Store:    handler.NewStoreHandler(storeUC, orderUC),
		Customer: handler.NewCustomerHandler(customerUC),
	}

	m := metrics.NewServerMetrics()

	e := server.New(cfg, h, m)
	if err := server.Start(e, cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}

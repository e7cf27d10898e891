package usecase_test

import (
	"context"
	"testing"

	"eshop/internal/config"
	"eshop/internal/domain/model"
	"eshop/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// 入力検証は素通しにして、usecaseの一意性・原子性だけを見る。
type passValidator struct{}

func (passValidator) ValidateRegister(ctx context.Context, req usecase.RegisterRequest) error {
	return nil
}

func (passValidator) ValidateLogin(ctx context.Context, username string, password string) error {
	return nil
}

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret"}
}

func customerRegisterRequest() usecase.RegisterRequest {
	return usecase.RegisterRequest{
		Username:  "maria",
		Email:     "maria@example.com",
		Password:  "password123",
		Role:      "CUSTOMER",
		FirstName: "Maria",
		LastName:  "Papadopoulou",
		TaxID:     "123456789012",
	}
}

func TestAuthUsecase_Register_CustomerCreatesProfileAndCart(t *testing.T) {
	ctx := context.Background()

	r := newTxReposMock()
	uc := usecase.NewAuthUsecase(testConfig(), newTxManagerMock(r), passValidator{})

	r.users.On("ExistsByUsername", mock.Anything, "maria").Return(false, nil)
	r.users.On("ExistsByEmail", mock.Anything, "maria@example.com").Return(false, nil)
	r.customers.On("ExistsByTaxID", mock.Anything, "123456789012").Return(false, nil)
	r.stores.On("ExistsByTaxID", mock.Anything, "123456789012").Return(false, nil)

	var savedUser *model.User
	r.users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			savedUser = args.Get(1).(*model.User)
			savedUser.ID = 7
		}).Return(nil)
	r.customers.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Customer) bool {
		return c.UserID == 7 && c.TaxID == "123456789012"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Customer).ID = 1
	}).Return(nil)
	r.carts.On("Create", mock.Anything, mock.MatchedBy(func(cart *model.ShoppingCart) bool {
		return cart.CustomerID == 1 && cart.TotalPrice.IsZero()
	})).Return(nil)

	out, err := uc.Register(ctx, customerRegisterRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.UserID)
	assert.Equal(t, "CUSTOMER", out.Role)

	//平文は保存されない
	require.NotNil(t, savedUser)
	assert.NotEqual(t, "password123", savedUser.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(savedUser.PasswordHash), []byte("password123")))

	r.carts.AssertExpectations(t)
}

func TestAuthUsecase_Register_StoreCreatesNoCart(t *testing.T) {
	ctx := context.Background()

	r := newTxReposMock()
	uc := usecase.NewAuthUsecase(testConfig(), newTxManagerMock(r), passValidator{})

	req := usecase.RegisterRequest{
		Username:  "techworld",
		Email:     "owner@techworld.com",
		Password:  "password123",
		Role:      "STORE",
		StoreName: "Tech World",
		Owner:     "Nikos",
		TaxID:     "999888777666",
	}

	r.users.On("ExistsByUsername", mock.Anything, "techworld").Return(false, nil)
	r.users.On("ExistsByEmail", mock.Anything, "owner@techworld.com").Return(false, nil)
	r.customers.On("ExistsByTaxID", mock.Anything, "999888777666").Return(false, nil)
	r.stores.On("ExistsByTaxID", mock.Anything, "999888777666").Return(false, nil)
	r.users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) { args.Get(1).(*model.User).ID = 8 }).Return(nil)
	r.stores.On("Create", mock.Anything, mock.MatchedBy(func(s *model.Store) bool {
		return s.UserID == 8 && s.Name == "Tech World" && s.Owner == "Nikos"
	})).Return(nil)

	out, err := uc.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "STORE", out.Role)

	r.customers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	r.carts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Register_UsernameConflictNoWrites(t *testing.T) {
	ctx := context.Background()

	r := newTxReposMock()
	uc := usecase.NewAuthUsecase(testConfig(), newTxManagerMock(r), passValidator{})

	r.users.On("ExistsByUsername", mock.Anything, "maria").Return(true, nil)

	_, err := uc.Register(ctx, customerRegisterRequest())
	require.Error(t, err)

	ue, ok := usecase.AsError(err)
	require.True(t, ok)
	assert.Equal(t, usecase.KindConflict, ue.Kind)
	assert.Equal(t, "Username is already taken", ue.Message)

	//User行も含めて一切書かれない
	r.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	r.customers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	r.carts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// tax_idは顧客・ストアをまたいで一意
func TestAuthUsecase_Register_TaxIDConflictAcrossStores(t *testing.T) {
	ctx := context.Background()

	r := newTxReposMock()
	uc := usecase.NewAuthUsecase(testConfig(), newTxManagerMock(r), passValidator{})

	r.users.On("ExistsByUsername", mock.Anything, "maria").Return(false, nil)
	r.users.On("ExistsByEmail", mock.Anything, "maria@example.com").Return(false, nil)
	r.customers.On("ExistsByTaxID", mock.Anything, "123456789012").Return(false, nil)
	r.stores.On("ExistsByTaxID", mock.Anything, "123456789012").Return(true, nil)

	_, err := uc.Register(ctx, customerRegisterRequest())
	require.Error(t, err)

	ue, ok := usecase.AsError(err)
	require.True(t, ok)
	assert.Equal(t, usecase.KindConflict, ue.Kind)
	assert.Equal(t, "Tax ID is already registered", ue.Message)

	r.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Login_IssuesToken(t *testing.T) {
	ctx := context.Background()

	r := newTxReposMock()
	uc := usecase.NewAuthUsecase(testConfig(), newTxManagerMock(r), passValidator{})

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	r.users.On("FindByUsername", mock.Anything, "maria").Return(model.User{
		ID:           7,
		Username:     "maria",
		Email:        "maria@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleCustomer,
	}, nil)

	out, err := uc.Login(ctx, usecase.LoginRequest{Username: "maria", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", out.TokenType)
	assert.Equal(t, int64(7), out.UserID)
	assert.Equal(t, "CUSTOMER", out.Role)

	//発行されたトークンが検証でき、sub/roleが入っている
	token, err := jwt.Parse(out.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(7), claims["sub"])
	assert.Equal(t, "CUSTOMER", claims["role"])
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()

	r := newTxReposMock()
	uc := usecase.NewAuthUsecase(testConfig(), newTxManagerMock(r), passValidator{})

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	r.users.On("FindByUsername", mock.Anything, "maria").Return(model.User{
		ID:           7,
		PasswordHash: string(hash),
		Role:         model.RoleCustomer,
	}, nil)

	_, err = uc.Login(ctx, usecase.LoginRequest{Username: "maria", Password: "wrong"})
	require.Error(t, err)

	ue, ok := usecase.AsError(err)
	require.True(t, ok)
	assert.Equal(t, usecase.KindUnauthorized, ue.Kind)
}

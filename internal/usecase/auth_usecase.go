package usecase

import (
	"context"
	"time"

	"eshop/internal/config"
	"eshop/internal/domain/model"
	repo "eshop/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// accesstokenの有効期限
const accessTokenTTL = 24 * time.Hour

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, req RegisterRequest) error
	ValidateLogin(ctx context.Context, username string, password string) error
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	//CUSTOMERのとき必須
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	//STOREのとき必須
	StoreName string `json:"store_name"`
	Owner     string `json:"owner"`
	//両ロール必須。顧客・ストアをまたいで一意。
	TaxID string `json:"tax_id"`
}

type RegisterResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Message  string `json:"message"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

type AuthUsecase struct {
	cfg       config.Config
	tx        repo.TransactionManager
	validator AuthValidator
}

func NewAuthUsecase(cfg config.Config, tx repo.TransactionManager, validator AuthValidator) *AuthUsecase {
	return &AuthUsecase{cfg: cfg, tx: tx, validator: validator}
}

// Register はユーザーとロール別プロフィールを同一トランザクションで作る。
// 一意性違反でロールバックした場合、Userだけが残ることはない。
func (u *AuthUsecase) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, req); err != nil {
		return nil, err
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewInternal("failed to hash password")
	}

	var res *RegisterResponse

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		taken, err := r.Users().ExistsByUsername(ctx, req.Username)
		if err != nil {
			return NewInternal("db error")
		}
		if taken {
			return NewConflict("Username is already taken")
		}

		taken, err = r.Users().ExistsByEmail(ctx, req.Email)
		if err != nil {
			return NewInternal("db error")
		}
		if taken {
			return NewConflict("Email is already in use")
		}

		//税IDは顧客・ストアの両テーブルをまたいで一意
		taken, err = r.Customers().ExistsByTaxID(ctx, req.TaxID)
		if err != nil {
			return NewInternal("db error")
		}
		if !taken {
			taken, err = r.Stores().ExistsByTaxID(ctx, req.TaxID)
			if err != nil {
				return NewInternal("db error")
			}
		}
		if taken {
			return NewConflict("Tax ID is already registered")
		}

		user := &model.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: string(pwHash),
			Role:         model.Role(req.Role),
		}
		if err := r.Users().Create(ctx, user); err != nil {
			return NewInternal("db error")
		}

		switch user.Role {
		case model.RoleCustomer:
			customer := &model.Customer{
				TaxID:     req.TaxID,
				FirstName: req.FirstName,
				LastName:  req.LastName,
				UserID:    user.ID,
			}
			if err := r.Customers().Create(ctx, customer); err != nil {
				return NewInternal("db error")
			}
			//顧客は空のカートを最初から持つ
			cart := &model.ShoppingCart{
				CustomerID: customer.ID,
				TotalPrice: decimal.Zero,
			}
			if err := r.Carts().Create(ctx, cart); err != nil {
				return NewInternal("db error")
			}
		case model.RoleStore:
			store := &model.Store{
				TaxID:  req.TaxID,
				Name:   req.StoreName,
				Owner:  req.Owner,
				UserID: user.ID,
			}
			if err := r.Stores().Create(ctx, store); err != nil {
				return NewInternal("db error")
			}
		default:
			return NewBadRequest("Invalid role")
		}

		res = &RegisterResponse{
			UserID:   user.ID,
			Username: user.Username,
			Role:     string(user.Role),
			Message:  "User registered successfully",
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return res, nil
}

// Login はbcrypt照合に通ったユーザーへアクセストークンを発行する。
func (u *AuthUsecase) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := u.validator.ValidateLogin(ctx, req.Username, req.Password); err != nil {
		return nil, err
	}

	var res *LoginResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByUsername(ctx, req.Username)
		if err == repo.ErrNotFound {
			//ユーザー不在とパスワード違いは区別しない
			return NewUnauthorized("Invalid username or password")
		}
		if err != nil {
			return NewInternal("db error")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			return NewUnauthorized("Invalid username or password")
		}

		accessToken, expiresIn, err := u.issueAccessToken(user)
		if err != nil {
			return NewInternal("failed to sign token")
		}

		res = &LoginResponse{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
			UserID:      user.ID,
			Username:    user.Username,
			Email:       user.Email,
			Role:        string(user.Role),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return res, nil
}

// jwt発行
func (u *AuthUsecase) issueAccessToken(user model.User) (string, int, error) {
	now := time.Now()
	exp := now.Add(accessTokenTTL)

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := t.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}

	return signed, int(accessTokenTTL.Seconds()), nil
}

package validator

import (
	"context"
	"regexp"
	"strings"

	"eshop/internal/domain/model"
	"eshop/internal/usecase"
)

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// サインアップの入力を検証。一意性チェックはusecase側（トランザクション内）。
func (v *authValidator) ValidateRegister(ctx context.Context, req usecase.RegisterRequest) error {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	// 必須チェック
	if username == "" || email == "" || req.Password == "" {
		return usecase.NewBadRequest("Username, email and password are required")
	}

	// email形式
	if !isEmailLike(email) {
		return usecase.NewBadRequest("Invalid email format")
	}

	// パスワード最低文字数（MVP: 8）
	if len(req.Password) < 8 {
		return usecase.NewBadRequest("Password must be at least 8 characters")
	}

	taxID := strings.TrimSpace(req.TaxID)
	if taxID == "" {
		return usecase.NewBadRequest("Tax ID is required")
	}
	if len(taxID) < 9 || len(taxID) > 12 {
		return usecase.NewBadRequest("Tax ID must be between 9 and 12 characters")
	}

	// ロール別の必須フィールド
	switch model.Role(req.Role) {
	case model.RoleCustomer:
		if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
			return usecase.NewBadRequest("First name and last name are required for customers")
		}
	case model.RoleStore:
		if strings.TrimSpace(req.StoreName) == "" || strings.TrimSpace(req.Owner) == "" {
			return usecase.NewBadRequest("Store name and owner are required for stores")
		}
	default:
		return usecase.NewBadRequest("Role must be CUSTOMER or STORE")
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, username string, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return usecase.NewBadRequest("Username and password are required")
	}
	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	re := regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	return re.MatchString(s)
}

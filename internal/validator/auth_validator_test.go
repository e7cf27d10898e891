package validator_test

import (
	"context"
	"testing"

	"eshop/internal/usecase"
	"eshop/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomerRequest() usecase.RegisterRequest {
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

func TestAuthValidator_ValidateRegister(t *testing.T) {
	v := validator.NewAuthValidator()
	ctx := context.Background()

	assert.NoError(t, v.ValidateRegister(ctx, validCustomerRequest()))

	cases := []struct {
		name   string
		mutate func(*usecase.RegisterRequest)
	}{
		{"empty username", func(r *usecase.RegisterRequest) { r.Username = "" }},
		{"bad email", func(r *usecase.RegisterRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *usecase.RegisterRequest) { r.Password = "short" }},
		{"missing tax id", func(r *usecase.RegisterRequest) { r.TaxID = " " }},
		{"tax id too short", func(r *usecase.RegisterRequest) { r.TaxID = "12345678" }},
		{"tax id too long", func(r *usecase.RegisterRequest) { r.TaxID = "1234567890123" }},
		{"unknown role", func(r *usecase.RegisterRequest) { r.Role = "ADMIN" }},
		{"customer without name", func(r *usecase.RegisterRequest) { r.FirstName = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCustomerRequest()
			tc.mutate(&req)

			err := v.ValidateRegister(ctx, req)
			require.Error(t, err)

			ue, ok := usecase.AsError(err)
			require.True(t, ok)
			assert.Equal(t, usecase.KindBadRequest, ue.Kind)
		})
	}
}

func TestAuthValidator_ValidateRegister_StoreFields(t *testing.T) {
	v := validator.NewAuthValidator()

	req := usecase.RegisterRequest{
		Username: "techworld",
		Email:    "owner@techworld.com",
		Password: "password123",
		Role:     "STORE",
		TaxID:    "999888777666",
	}

	//store_name / owner が無いストア登録は弾く
	err := v.ValidateRegister(context.Background(), req)
	require.Error(t, err)

	req.StoreName = "Tech World"
	req.Owner = "Nikos"
	assert.NoError(t, v.ValidateRegister(context.Background(), req))
}

func TestAuthValidator_ValidateLogin(t *testing.T) {
	v := validator.NewAuthValidator()
	ctx := context.Background()

	assert.NoError(t, v.ValidateLogin(ctx, "maria", "password123"))
	assert.Error(t, v.ValidateLogin(ctx, "", "password123"))
	assert.Error(t, v.ValidateLogin(ctx, "maria", ""))
}

package request

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSignupRequest_Validate(t *testing.T) {
	base := SignupRequest{
		Email:           "ana@depot.test",
		Password:        "forklift9",
		ConfirmPassword: "forklift9",
		Name:            "Ana",
		Role:            "picker",
	}

	tests := []struct {
		name    string
		mutate  func(r *SignupRequest)
		wantErr error
	}{
		{"valid", func(r *SignupRequest) {}, nil},
		{"too short", func(r *SignupRequest) { r.Password, r.ConfirmPassword = "fork9", "fork9" }, errInvalidPassword},
		{"no digit", func(r *SignupRequest) { r.Password, r.ConfirmPassword = "forklifts", "forklifts" }, errInvalidPassword},
		{"no letter", func(r *SignupRequest) { r.Password, r.ConfirmPassword = "12345678", "12345678" }, errInvalidPassword},
		{"mismatch", func(r *SignupRequest) { r.ConfirmPassword = "forklift8" }, errConfirmPasswordMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)

			err := req.Validate()

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSignupRequest_ValidateRole(t *testing.T) {
	for _, role := range []string{"driver", "admin", "clerk"} {
		req := SignupRequest{Email: "a@b.test", Password: "forklift9", ConfirmPassword: "forklift9", Name: "A", Role: role}
		assert.Error(t, req.Validate(), role)
	}

	req := SignupRequest{Email: "a@b.test", Password: "forklift9", ConfirmPassword: "forklift9", Name: "A", Role: "sales"}
	assert.NoError(t, req.Validate())
}

func TestCreateUserRequest_Validate(t *testing.T) {
	req := CreateUserRequest{SignupRequest{Email: "a@b.test", Password: "forklift9", ConfirmPassword: "forklift9", Name: "A", Role: "admin"}}
	assert.NoError(t, req.Validate())

	req.Role = "driver"
	assert.Error(t, req.Validate())

	req.Role = "clerk"
	req.Password = "short"
	assert.ErrorIs(t, req.Validate(), errInvalidPassword)
}

func TestQuoteLineRequest_Validate(t *testing.T) {
	line := QuoteLineRequest{Description: "Van", Qty: 1, UnitPrice: decimal.NewFromInt(10), DiscountPct: decimal.NewFromInt(100)}
	assert.NoError(t, line.Validate())

	line.DiscountPct = decimal.RequireFromString("100.01")
	assert.Error(t, line.Validate())

	line.DiscountPct = decimal.Zero
	line.UnitPrice = decimal.NewFromInt(-1)
	assert.Error(t, line.Validate())
}

func TestCreatePickslipRequest_DuplicatePart(t *testing.T) {
	req := CreatePickslipRequest{
		Customer: "Fleet Co",
		Lines:    []PickslipLineRequest{{PartID: 1, QtyRequested: 1}, {PartID: 1, QtyRequested: 2}},
	}

	assert.ErrorIs(t, req.Validate(), errDuplicatePart)
}

func TestUpdateBinRequest_Validate(t *testing.T) {
	capacity := 10
	assert.ErrorIs(t, (&UpdateBinRequest{}).Validate(), errEmptyBinUpdate)
	assert.NoError(t, (&UpdateBinRequest{Capacity: &capacity}).Validate())
}

package lending_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Loan-api/internal/domain"
	"github.com/jhoicas/Loan-api/internal/domain/entity"
	"github.com/jhoicas/Loan-api/internal/domain/lending"
)

func newCustomer(limit string, used *string) *entity.Customer {
	c := &entity.Customer{
		ID:          "c-1",
		Username:    "first.customer",
		Role:        entity.RoleCustomer,
		CreditLimit: decimal.RequireFromString(limit),
	}
	if used != nil {
		c.UsedCreditLimit = decimal.NewNullDecimal(decimal.RequireFromString(*used))
	}
	return c
}

func TestCreditLedger_UsadoNuloEsCero(t *testing.T) {
	ledger := lending.NewCreditLedger(newCustomer("500", nil))
	assert.True(t, ledger.Used().IsZero())
	assert.True(t, ledger.Available().Equal(decimal.NewFromInt(500)))
	assert.NoError(t, ledger.CheckSufficientLimit(decimal.NewFromInt(500)))
}

func TestCreditLedger_LimiteInsuficiente(t *testing.T) {
	ledger := lending.NewCreditLedger(newCustomer("500", strPtr("450")))

	err := ledger.CheckSufficientLimit(decimal.RequireFromString("50.01"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientLimit)

	var insufficient *domain.InsufficientLimitError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "c-1", insufficient.CustomerID)
	assert.Equal(t, "500", insufficient.CreditLimit.String())
	assert.Equal(t, "450", insufficient.UsedCreditLimit.String())
	assert.Equal(t, "50.01", insufficient.Requested.String())

	// El chequeo no muta.
	assert.Equal(t, "450", ledger.Used().String())
}

func TestCreditLedger_ReserveYRelease(t *testing.T) {
	customer := newCustomer("500", nil)
	ledger := lending.NewCreditLedger(customer)

	ledger.Reserve(decimal.RequireFromString("66"))
	require.True(t, customer.UsedCreditLimit.Valid)
	assert.Equal(t, "66", customer.UsedCreditLimit.Decimal.String())

	ledger.Release(decimal.RequireFromString("11"))
	assert.Equal(t, "55", customer.UsedCreditLimit.Decimal.String())
}

func TestCreditLedger_ReleaseNuncaBajaDeCero(t *testing.T) {
	customer := newCustomer("500", strPtr("10"))
	lending.NewCreditLedger(customer).Release(decimal.NewFromInt(11))
	assert.True(t, customer.UsedCreditLimit.Decimal.IsZero())
}

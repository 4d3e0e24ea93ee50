package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles válidos para Customer.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Customer representa un cliente con línea de crédito.
// UsedCreditLimit nulo equivale a cero; solo lo modifica el CreditLedger del motor de préstamos.
type Customer struct {
	ID              string
	Name            string
	Surname         string
	Username        string // name.surname, o "admin"
	PasswordHash    string // bcrypt
	Role            string // customer, admin
	CreditLimit     decimal.Decimal
	UsedCreditLimit decimal.NullDecimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// UsernameFor compone el username a partir de nombre y apellido.
func UsernameFor(name, surname string) string {
	return name + "." + surname
}

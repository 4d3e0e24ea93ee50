package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidRequest    = errors.New("solicitud inválida")
	ErrInsufficientLimit = errors.New("límite de crédito insuficiente")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
)

// InvalidRequestError describe la restricción violada por un campo de entrada y el valor recibido.
type InvalidRequestError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Field, e.Value, e.Reason)
}

// Is permite errors.Is(err, ErrInvalidRequest).
func (e *InvalidRequestError) Is(target error) bool { return target == ErrInvalidRequest }

// InsufficientLimitError se produce cuando el crédito disponible no cubre el monto solicitado.
type InsufficientLimitError struct {
	CustomerID      string
	CreditLimit     decimal.Decimal
	UsedCreditLimit decimal.Decimal
	Requested       decimal.Decimal
}

func (e *InsufficientLimitError) Error() string {
	return fmt.Sprintf("el cliente [customerId: %s, creditLimit: %s, usedCreditLimit: %s] no tiene límite suficiente para cubrir [loanAmount: %s]",
		e.CustomerID, e.CreditLimit.String(), e.UsedCreditLimit.String(), e.Requested.String())
}

// Is permite errors.Is(err, ErrInsufficientLimit).
func (e *InsufficientLimitError) Is(target error) bool { return target == ErrInsufficientLimit }

// NotFoundError identifica el recurso buscado y la clave usada.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s con [%s] no encontrado", e.Resource, e.Key)
}

// Is permite errors.Is(err, ErrNotFound).
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

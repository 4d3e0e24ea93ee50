package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Loan-api/internal/application/dto"
	"github.com/jhoicas/Loan-api/internal/domain"
	"github.com/jhoicas/Loan-api/internal/domain/repository"
	"github.com/jhoicas/Loan-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase emite tokens para clientes y administradores.
type AuthUseCase struct {
	customerRepo repository.CustomerRepository
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(customerRepo repository.CustomerRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{customerRepo: customerRepo, jwtCfg: jwtCfg}
}

// IssueToken verifica username/password contra el hash bcrypt y firma un JWT.
// Usuario inexistente y password incorrecto devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) IssueToken(ctx context.Context, in dto.TokenRequest) (*dto.TokenResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, &domain.InvalidRequestError{Field: "username/password", Reason: "no pueden omitirse"}
	}
	customer, err := uc.customerRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, customer.ID, customer.Username, customer.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: token}, nil
}

// HashPassword hashea con bcrypt (costo por defecto). Lo usa el seeder.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

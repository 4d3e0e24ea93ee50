// seed crea los clientes iniciales (first.customer, second.customer) y la cuenta admin.
// Es idempotente: los usernames existentes se omiten.
//
// Uso: go run ./cmd/seed [password]
// Por defecto la contraseña de todas las cuentas es "secret".
package main

import (
	"context"
	"errors"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Loan-api/internal/application/auth"
	"github.com/jhoicas/Loan-api/internal/domain"
	"github.com/jhoicas/Loan-api/internal/domain/entity"
	"github.com/jhoicas/Loan-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Loan-api/pkg/config"
	"github.com/jhoicas/Loan-api/pkg/logger"
)

type seedCustomer struct {
	name, surname string
	role          string
	creditLimit   decimal.Decimal
}

var seedCustomers = []seedCustomer{
	{name: "first", surname: "customer", role: entity.RoleCustomer, creditLimit: decimal.NewFromInt(500)},
	{name: "second", surname: "customer", role: entity.RoleCustomer, creditLimit: decimal.NewFromInt(250)},
	{name: "admin", role: entity.RoleAdmin, creditLimit: decimal.Zero},
}

func main() {
	password := "secret"
	if len(os.Args) > 1 {
		password = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatal().Err(err).Msg("hashear contraseña")
	}

	repo := postgres.NewCustomerRepository(pool)
	created := 0
	for _, s := range seedCustomers {
		username := s.name
		if s.surname != "" {
			username = entity.UsernameFor(s.name, s.surname)
		}
		customer := &entity.Customer{
			Name:         s.name,
			Surname:      s.surname,
			Username:     username,
			PasswordHash: hash,
			Role:         s.role,
			CreditLimit:  s.creditLimit,
		}
		err := repo.Create(ctx, customer)
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			log.Info().Str("username", username).Msg("cliente ya existe, se omite")
		case err != nil:
			log.Fatal().Err(err).Str("username", username).Msg("crear cliente")
		default:
			created++
			log.Info().Str("username", username).Str("credit_limit", s.creditLimit.String()).Msg("cliente creado")
		}
	}
	log.Info().Int("created", created).Msg("seed completado")
}

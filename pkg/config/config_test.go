package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Loan-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "USD", cfg.Loan.Currency)
	assert.Equal(t, "en-US", cfg.Loan.Locale)
	assert.Equal(t, -1, cfg.Loan.FractionDigits)
	assert.Equal(t, 10, cfg.Loan.DefaultPageSize)
	assert.Equal(t, 100, cfg.Loan.MaxPageSize)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestLoad_EnvVarsTienenPrioridad(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("LOAN_CURRENCY", "eur")
	t.Setenv("LOAN_LOCALE", "de-DE")
	t.Setenv("LOAN_FRACTION_DIGITS", "3")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_MAX_CONNS", "4")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "EUR", cfg.Loan.Currency)
	assert.Equal(t, "de-DE", cfg.Loan.Locale)
	assert.Equal(t, 3, cfg.Loan.FractionDigits)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, 4, cfg.DB.MaxConns)
}

func TestLoad_SecretObligatorioFueraDeDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidate_PaginacionInvalida(t *testing.T) {
	cfg := &config.Config{
		App:  config.AppConfig{Env: "development"},
		JWT:  config.JWTConfig{Expiration: 60},
		DB:   config.DBConfig{MaxConns: 5},
		Loan: config.LoanConfig{DefaultPageSize: 50, MaxPageSize: 10},
	}
	assert.Error(t, cfg.Validate())
}

func TestDBConfig_ConnectionString(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "loan", Password: "p@ss:word", DBName: "loans", SSLMode: "disable"}
	assert.Equal(t, "postgres://loan:p%40ss%3Aword@db:5432/loans?sslmode=disable", db.ConnectionString())

	db.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", db.ConnectionString())
}

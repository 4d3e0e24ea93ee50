package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/swaggo/swag"

	"github.com/jhoicas/Loan-api/docs"
	"github.com/jhoicas/Loan-api/internal/application/auth"
	"github.com/jhoicas/Loan-api/internal/application/loan"
	"github.com/jhoicas/Loan-api/internal/domain/lending"
	"github.com/jhoicas/Loan-api/internal/domain/money"
	"github.com/jhoicas/Loan-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Loan-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Loan-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Loan-api/internal/interfaces/http"
	"github.com/jhoicas/Loan-api/pkg/config"
	"github.com/jhoicas/Loan-api/pkg/currency"
	"github.com/jhoicas/Loan-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	// Los decimales de la moneda definen el redondeo de cuotas y ajustes.
	formatter, err := currency.NewFormatter(cfg.Loan.Currency, cfg.Loan.Locale, int32(cfg.Loan.FractionDigits))
	if err != nil {
		log.Fatal().Err(err).Str("currency", cfg.Loan.Currency).Msg("moneda inválida")
	}
	log.Info().
		Str("currency", cfg.Loan.Currency).
		Int32("fraction_digits", formatter.FractionDigits()).
		Msg("moneda configurada")

	customerRepo := postgres.NewCustomerRepository(pool)
	loanRepo := postgres.NewLoanRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	loanMetrics := metrics.NewLoanMetrics("")
	statementGenerator := infrapdf.NewStatementGenerator(cfg.App.Name)

	loanUC := loan.NewUseCase(
		customerRepo, loanRepo, txRunner,
		lending.SystemClock{}, formatter, statementGenerator, loanMetrics,
		loan.Config{
			Rounding:        money.NewRounding(formatter.FractionDigits()),
			DefaultPageSize: cfg.Loan.DefaultPageSize,
			MaxPageSize:     cfg.Loan.MaxPageSize,
		},
	)
	authUC := auth.NewAuthUseCase(customerRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Loan API",
	}))

	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})
	app.Get("/metrics", adaptor.HTTPHandler(loanMetrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		LoanUC:    loanUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Loan-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    TokenIssuer
	LoanUC    LoanService
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/token", authHandler.Token)

	loanHandler := NewLoanHandler(deps.LoanUC)
	authn := AuthMiddleware(deps.JWTSecret)
	resolve := ResolveCustomer(deps.LoanUC)

	// Préstamos propios del cliente autenticado
	mountLoanRoutes(api.Group("/loans"), loanHandler,
		authn, RequireRole(entity.RoleCustomer), resolve)

	// Administración: el admin opera sobre el cliente :username
	mountLoanRoutes(api.Group("/admin/customers/:username/loans"), loanHandler,
		authn, RequireRole(entity.RoleAdmin), resolve)
}

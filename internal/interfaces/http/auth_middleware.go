package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Loan-api/internal/application/dto"
	"github.com/jhoicas/Loan-api/internal/domain/entity"
	"github.com/jhoicas/Loan-api/pkg/jwt"
)

// Locals keys cargadas por AuthMiddleware y ResolveCustomer.
const (
	LocalCustomerID       = "customer_id"
	LocalUsername         = "username"
	LocalRole             = "role"
	LocalTargetCustomerID = "target_customer_id"
)

// CustomerFinder resuelve un cliente por username (rutas de administración).
type CustomerFinder interface {
	FindCustomerByUsername(ctx context.Context, username string) (*entity.Customer, error)
}

// AuthMiddleware valida el Bearer Token JWT y carga customer_id, username y role en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalCustomerID, claims.CustomerID)
		c.Locals(LocalUsername, claims.Username)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RequireRole deja pasar solo si el rol del token está entre los permitidos.
// Debe montarse después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no contiene rol"})
		}
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: CodeForbidden, Message: "rol sin permiso para este recurso"})
		}
		return c.Next()
	}
}

// ResolveCustomer fija el cliente objetivo de la petición. Un cliente solo actúa sobre sí mismo;
// en rutas con :username (solo admin) el objetivo se busca por username.
func ResolveCustomer(finder CustomerFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username := c.Params("username")
		if username == "" {
			id := GetCustomerID(c)
			if id == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "el token no identifica al cliente"})
			}
			c.Locals(LocalTargetCustomerID, id)
			return c.Next()
		}
		if GetRole(c) != entity.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: CodeForbidden, Message: "solo un administrador puede actuar sobre otro cliente"})
		}
		customer, err := finder.FindCustomerByUsername(c.UserContext(), username)
		if err != nil {
			return writeError(c, err)
		}
		c.Locals(LocalTargetCustomerID, customer.ID)
		return c.Next()
	}
}

// GetCustomerID devuelve el ID del cliente autenticado.
func GetCustomerID(c *fiber.Ctx) string { return localString(c, LocalCustomerID) }

// GetUsername devuelve el username del token.
func GetUsername(c *fiber.Ctx) string { return localString(c, LocalUsername) }

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetTargetCustomerID devuelve el cliente sobre el que opera la petición (después de ResolveCustomer).
func GetTargetCustomerID(c *fiber.Ctx) string { return localString(c, LocalTargetCustomerID) }

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

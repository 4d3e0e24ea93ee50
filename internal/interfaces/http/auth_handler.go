package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Loan-api/internal/application/dto"
)

// TokenIssuer emite tokens a partir de credenciales.
type TokenIssuer interface {
	IssueToken(ctx context.Context, in dto.TokenRequest) (*dto.TokenResponse, error)
}

// AuthHandler expone la emisión de tokens.
type AuthHandler struct {
	uc TokenIssuer
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc TokenIssuer) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Token godoc
// @Summary      Obtener token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TokenRequest  true  "username, password"
// @Success      200   {object}  dto.TokenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/token [post]
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var in dto.TokenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidRequest, Message: "cuerpo inválido"})
	}
	out, err := h.uc.IssueToken(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

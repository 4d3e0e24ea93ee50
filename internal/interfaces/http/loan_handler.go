package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Loan-api/internal/application/dto"
)

// LoanService operaciones de préstamos que expone la API.
type LoanService interface {
	CustomerFinder
	CreateLoan(ctx context.Context, customerID string, in dto.CreateLoanRequest) (*dto.LoanResponse, error)
	ListLoans(ctx context.Context, customerID string, in dto.ListLoansRequest) (*dto.LoanPageResponse, error)
	GetInstallments(ctx context.Context, customerID, loanID string) ([]dto.InstallmentResponse, error)
	PayLoan(ctx context.Context, customerID, loanID string, in dto.PayLoanRequest) (*dto.PayLoanResponse, error)
	Statement(ctx context.Context, customerID, loanID string) ([]byte, string, error)
}

// LoanHandler maneja préstamos del cliente objetivo resuelto por ResolveCustomer.
type LoanHandler struct {
	uc LoanService
}

// NewLoanHandler construye el handler de préstamos.
func NewLoanHandler(uc LoanService) *LoanHandler {
	return &LoanHandler{uc: uc}
}

// Create godoc
// @Summary      Originar préstamo
// @Tags         loans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateLoanRequest  true  "loanAmount, numberOfInstallments, interestRate"
// @Success      201   {object}  dto.LoanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/loans [post]
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLoanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidRequest, Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateLoan(c.UserContext(), GetTargetCustomerID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar préstamos
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Param        page                    query  int   false  "página (desde 0)"
// @Param        page_size               query  int   false  "tamaño de página"
// @Param        number_of_installments  query  int   false  "filtrar por número de cuotas"
// @Param        paid                    query  bool  false  "filtrar por estado de pago"
// @Success      200   {object}  dto.LoanPageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	var in dto.ListLoansRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidRequest, Message: "parámetros de consulta inválidos"})
	}
	out, err := h.uc.ListLoans(c.UserContext(), GetTargetCustomerID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Installments godoc
// @Summary      Cuotas de un préstamo
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del préstamo"
// @Success      200  {array}   dto.InstallmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/loans/{id}/installments [get]
func (h *LoanHandler) Installments(c *fiber.Ctx) error {
	out, err := h.uc.GetInstallments(c.UserContext(), GetTargetCustomerID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Pay godoc
// @Summary      Pagar préstamo
// @Tags         loans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "ID del préstamo"
// @Param        body  body  dto.PayLoanRequest  true  "amount"
// @Success      200   {object}  dto.PayLoanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/loans/{id} [patch]
func (h *LoanHandler) Pay(c *fiber.Ctx) error {
	var in dto.PayLoanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidRequest, Message: "cuerpo inválido"})
	}
	out, err := h.uc.PayLoan(c.UserContext(), GetTargetCustomerID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Statement godoc
// @Summary      Estado de cuenta en PDF
// @Tags         loans
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del préstamo"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/loans/{id}/statement [get]
func (h *LoanHandler) Statement(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.Statement(c.UserContext(), GetTargetCustomerID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}

// mountLoanRoutes registra las rutas de préstamos; mw se antepone a cada handler.
func mountLoanRoutes(r fiber.Router, h *LoanHandler, mw ...fiber.Handler) {
	with := func(handler fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, mw...), handler)
	}
	r.Post("/", with(h.Create)...)
	r.Get("/", with(h.List)...)
	r.Get("/:id/installments", with(h.Installments)...)
	r.Patch("/:id", with(h.Pay)...)
	r.Get("/:id/statement", with(h.Statement)...)
}

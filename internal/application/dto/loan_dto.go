package dto

// CreateLoanRequest body de POST /api/loans.
// Los montos y la tasa se conservan como texto para no perder precisión en el límite del rango.
type CreateLoanRequest struct {
	LoanAmount           *DecimalText `json:"loanAmount" swaggertype:"string" example:"60"`
	NumberOfInstallments int          `json:"numberOfInstallments" example:"6"`
	InterestRate         DecimalText  `json:"interestRate" swaggertype:"string" example:"0.1"`
}

// PayLoanRequest body de PATCH /api/loans/:id.
type PayLoanRequest struct {
	Amount *DecimalText `json:"amount" swaggertype:"string" example:"11"`
}

// ListLoansRequest filtros y paginación del listado. Page empieza en 0.
type ListLoansRequest struct {
	Page                 int   `query:"page"`
	PageSize             int   `query:"page_size"`
	NumberOfInstallments *int  `query:"number_of_installments"`
	Paid                 *bool `query:"paid"`
}

// InstallmentResponse cuota con fechas yyyy-MM-dd y montos formateados en la moneda configurada.
type InstallmentResponse struct {
	ID          string `json:"id"`
	DueDate     string `json:"dueDate"`
	Amount      string `json:"amount"`
	PaidAmount  string `json:"paidAmount,omitempty"`
	PaymentDate string `json:"paymentDate,omitempty"`
	Paid        bool   `json:"paid"`
}

// LoanResponse préstamo con sus cuotas.
type LoanResponse struct {
	ID                   string                `json:"id"`
	CustomerID           string                `json:"customerId"`
	LoanAmount           string                `json:"loanAmount"`
	InterestRate         string                `json:"interestRate"`
	TotalAmount          string                `json:"totalAmount"`
	NumberOfInstallments int                   `json:"numberOfInstallments"`
	CreateDate           string                `json:"createDate"`
	Paid                 bool                  `json:"paid"`
	Installments         []InstallmentResponse `json:"installments"`
}

// LoanPageResponse página de préstamos.
type LoanPageResponse struct {
	Items []LoanResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// PayLoanResponse resultado de aplicar un pago.
type PayLoanResponse struct {
	NumberOfInstallmentsPaid int    `json:"numberOfInstallmentsPaid"`
	TotalAmountSpent         string `json:"totalAmountSpent"`
	LoanPaidCompletely       bool   `json:"loanPaidCompletely"`
}

// Package pdf genera el estado de cuenta de un préstamo en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Estado de cuenta + N° préstamo │ Fecha de emisión   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + username                                 │
//	│  CONDICIONES: principal, tasa, total, cuotas, estado        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Vence | Monto | Pagado | Fecha pago | Estado     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SALDO PENDIENTE                                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Loan-api/internal/application/dto"
	"github.com/jhoicas/Loan-api/internal/application/loan"
)

var _ loan.StatementGenerator = (*StatementGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorPaid    = &props.Color{Red: 20, Green: 120, Blue: 60}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// StatementGenerator implementa loan.StatementGenerator usando Maroto v2.
type StatementGenerator struct {
	author string
}

// NewStatementGenerator construye el generador. author aparece en los metadatos del PDF.
func NewStatementGenerator(author string) *StatementGenerator {
	return &StatementGenerator{author: author}
}

// GenerateLoanStatement genera el PDF y devuelve sus bytes.
func (g *StatementGenerator) GenerateLoanStatement(_ context.Context, data loan.StatementData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de cuenta del préstamo "+data.Loan.ID, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(data))
	m.AddRows(termsRow(data.Loan))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(scheduleHeaderRow())
	m.AddRows(scheduleRows(data.Loan.Installments)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(outstandingRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(data loan.StatementData) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("ESTADO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Préstamo "+data.Loan.ID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Emitido: "+data.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Originado: "+data.Loan.CreateDate, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func customerRow(data loan.StatementData) core.Row {
	name := data.Customer.Name + " " + data.Customer.Surname
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New("Usuario: "+data.Customer.Username, props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func termsRow(l dto.LoanResponse) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 8, Top: top, Align: align.Right})
	}
	status := "PENDIENTE"
	if l.Paid {
		status = "PAGADO"
	}
	return row.New(26).Add(
		col.New(3).Add(
			label("Principal:", 1),
			label("Tasa de interés:", 6),
			label("Total a devolver:", 11),
			label("Cuotas:", 16),
			label("Estado:", 21),
		),
		col.New(3).Add(
			value(l.LoanAmount, 1),
			value(l.InterestRate, 6),
			value(l.TotalAmount, 11),
			value(strconv.Itoa(l.NumberOfInstallments), 16),
			value(status, 21),
		),
		col.New(6),
	)
}

func scheduleHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Vence", 2, align.Left),
		h("Monto", 3, align.Right),
		h("Pagado", 3, align.Right),
		h("Fecha pago", 2, align.Center),
		h("Estado", 1, align.Center),
	)
}

func scheduleRows(installments []dto.InstallmentResponse) []core.Row {
	rows := make([]core.Row, 0, len(installments))
	for i, inst := range installments {
		status, color := "Pend.", colorGray
		if inst.Paid {
			status, color = "Pagada", colorPaid
		}
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(inst.DueDate, props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(inst.Amount, props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(nonEmpty(inst.PaidAmount, "-"), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(nonEmpty(inst.PaymentDate, "-"), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(status, props.Text{Size: 8, Align: align.Center, Top: 1, Color: color})),
		))
	}
	return rows
}

func outstandingRow(data loan.StatementData) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("SALDO PENDIENTE:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 3, Right: 2,
		})),
		col.New(3).Add(text.New(data.Outstanding, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 3,
		})),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

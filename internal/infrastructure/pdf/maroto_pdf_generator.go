// Package pdf genera el estado de cuenta del cliente y el resumen del periodo con Maroto v2.
//
// Layout del estado de cuenta (A4 horizontal):
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│  HEADER: Agencia + título  │  Cliente + fecha de generación      │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Variante | Llenos | Vacíos | Bal. | Total │
//	│         | Recibido | Saldo fila | Acumulado                      │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  TOTALES + saldo del servidor (+ aviso si difiere)               │
//	│  BALANCE POR VARIANTE                                            │
//	└──────────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	marotoentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gasagency-backoffice/internal/application/report"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	"github.com/jhoicas/gasagency-backoffice/pkg/money"
)

var _ report.PDFRenderer = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarn    = &props.Color{Red: 180, Green: 40, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.PDFRenderer usando Maroto v2.
type MarotoPDFGenerator struct {
	agency string
	fmt    *money.Formatter
}

// NewMarotoPDFGenerator construye el generador. agency es el nombre que encabeza los documentos.
func NewMarotoPDFGenerator(agency string, f *money.Formatter) *MarotoPDFGenerator {
	if f == nil {
		f = money.NewFormatter("en-IN")
	}
	return &MarotoPDFGenerator{agency: agency, fmt: f}
}

// LedgerStatementPDF genera el estado de cuenta y devuelve sus bytes.
func (g *MarotoPDFGenerator) LedgerStatementPDF(_ context.Context, st *report.LedgerStatement) ([]byte, error) {
	m := maroto.New(g.config("Estado de cuenta", orientation.Horizontal))

	m.AddRows(g.headerRow("ESTADO DE CUENTA DE CILINDROS", st.Customer.Name,
		"Generado: "+st.GeneratedAt.Format("02/01/2006 15:04")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(ledgerHeaderRow())
	m.AddRows(g.ledgerRows(st)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.statementTotalsRows(st)...)
	m.AddRows(g.variantBalanceRows(st)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar estado de cuenta: %w", err)
	}
	return doc.GetBytes(), nil
}

// PeriodSummaryPDF genera el resumen del periodo.
func (g *MarotoPDFGenerator) PeriodSummaryPDF(_ context.Context, s *entity.PeriodSummary) ([]byte, error) {
	m := maroto.New(g.config("Resumen del periodo", orientation.Vertical))

	m.AddRows(g.headerRow("RESUMEN DEL PERIODO", s.From.Format("02/01/2006")+" al "+s.To.Format("02/01/2006"), ""))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle("TOTALES"))
	m.AddRows(
		g.kvRow("Ventas", s.TotalSales),
		g.kvRow("Cobros", s.TotalCollections),
		g.kvRow("Gastos", s.TotalExpenses),
		g.kvRow("Depósitos bancarios", s.TotalDeposits),
		g.kvRow("Saldo pendiente al cierre", s.ClosingDue),
	)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("MOVIMIENTO POR VARIANTE"))
	m.AddRows(headerCells([]cell{
		{"Variante", 5, align.Left}, {"Llenos", 2, align.Right}, {"Vacíos", 2, align.Right}, {"Importe", 3, align.Right},
	}, 7))
	for _, v := range s.Variants {
		m.AddRows(bodyCells([]cell{
			{v.VariantName, 5, align.Left},
			{g.fmt.Quantity(v.FilledIssued), 2, align.Right},
			{g.fmt.Quantity(v.EmptyReceived), 2, align.Right},
			{g.fmt.WithSymbol(v.Amount), 3, align.Right},
		}, 6))
	}

	if len(s.ExpenseByKind) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(sectionTitle("GASTOS POR CATEGORÍA"))
		for _, c := range s.ExpenseByKind {
			m.AddRows(g.kvRow(c.Category, c.Amount))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar resumen: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoPDFGenerator) config(title string, o orientation.Type) *marotoentity.Config {
	return config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(o).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(title, true).
		WithAuthor(g.agency, true).
		Build()
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: agencia + título (izq) y sujeto + subtítulo (der).
func (g *MarotoPDFGenerator) headerRow(title, subject, subtitle string) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.agency, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(title, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(subject, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1}),
			text.New(subtitle, props.Text{Size: 8, Align: align.Right, Top: 9, Color: colorGray}),
		),
	)
}

var ledgerColumns = []cell{
	{"Fecha", 1, align.Left},
	{"Tipo", 1, align.Left},
	{"Variante", 2, align.Left},
	{"Llenos", 1, align.Right},
	{"Vacíos", 1, align.Right},
	{"Bal.", 1, align.Right},
	{"Total", 1, align.Right},
	{"Recibido", 1, align.Right},
	{"Saldo fila", 1, align.Right},
	{"Acumulado", 2, align.Right},
}

func ledgerHeaderRow() core.Row {
	return headerCells(ledgerColumns, 8)
}

func (g *MarotoPDFGenerator) ledgerRows(st *report.LedgerStatement) []core.Row {
	rows := make([]core.Row, 0, len(st.Lines))
	for _, l := range st.Lines {
		e := l.Entry
		values := []string{
			e.TransactionDate.Format("02/01/2006"),
			refTypeLabel(e.RefType),
			nonEmpty(e.VariantName, "—"),
			g.fmt.Quantity(e.FilledOut),
			g.fmt.Quantity(e.EmptyIn),
			g.fmt.Quantity(e.Balance),
			g.fmt.Amount(e.TotalAmount),
			g.fmt.Amount(e.AmountReceived),
			g.fmt.Amount(l.RowDue),
			g.fmt.Amount(l.Running),
		}
		cells := make([]cell, len(ledgerColumns))
		for i, c := range ledgerColumns {
			cells[i] = cell{values[i], c.size, c.align}
		}
		rows = append(rows, bodyCells(cells, 6))
	}
	return rows
}

func (g *MarotoPDFGenerator) statementTotalsRows(st *report.LedgerStatement) []core.Row {
	rows := []core.Row{
		kvText("Llenos entregados / vacíos recibidos",
			g.fmt.Quantity(st.Totals.FilledOut)+" / "+g.fmt.Quantity(st.Totals.EmptyIn)),
		g.kvRow("Total facturado", st.Totals.TotalAmount),
		g.kvRow("Total recibido", st.Totals.AmountReceived),
		g.kvRow("Saldo acumulado (calculado)", st.DerivedDue),
		g.kvRow("SALDO PENDIENTE (servidor)", st.ServerDue),
	}
	if st.Diverges() {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Atención: el saldo acumulado (%s) difiere del saldo del servidor (%s). "+
				"El saldo del servidor es el vigente.", g.fmt.WithSymbol(st.DerivedDue), g.fmt.WithSymbol(st.ServerDue)),
				props.Text{Style: fontstyle.Bold, Size: 8, Color: colorWarn, Top: 2}),
		)))
	}
	return rows
}

func (g *MarotoPDFGenerator) variantBalanceRows(st *report.LedgerStatement) []core.Row {
	if len(st.Balances.ByVariant) == 0 {
		return nil
	}
	rows := []core.Row{row.New(3), sectionTitle("CILINDROS EN PODER DEL CLIENTE")}
	for _, b := range st.Balances.ByVariant {
		rows = append(rows, kvText(b.VariantName, g.fmt.Quantity(b.Balance)))
	}
	return append(rows, kvText("Llenos pendientes", g.fmt.Quantity(st.Balances.PendingFilled)))
}

// ── helpers ───────────────────────────────────────────────────────────────────

type cell struct {
	label string
	size  int
	align align.Type
}

func headerCells(cells []cell, height float64) core.Row {
	cols := make([]core.Col, 0, len(cells))
	for _, c := range cells {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(height).Add(cols...)
}

func bodyCells(cells []cell, height float64) core.Row {
	cols := make([]core.Col, 0, len(cells))
	for _, c := range cells {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Size: 7.5, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(height).Add(cols...)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

// kvRow etiqueta + importe alineados a la derecha.
func (g *MarotoPDFGenerator) kvRow(label string, value decimal.Decimal) core.Row {
	return kvText(label, g.fmt.WithSymbol(value))
}

func kvText(label, value string) core.Row {
	return row.New(6).Add(
		col.New(4),
		col.New(5).Add(text.New(label+":", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})),
		col.New(3).Add(text.New(value, props.Text{Size: 9, Align: align.Right, Right: 1})),
	)
}

func refTypeLabel(t entity.RefType) string {
	switch t {
	case entity.RefTypeSale:
		return "Venta"
	case entity.RefTypeEmptyReturn:
		return "Devolución"
	case entity.RefTypePayment:
		return "Pago"
	case entity.RefTypeInitialStock:
		return "Inicial"
	case entity.RefTypeTransfer:
		return "Traslado"
	case entity.RefTypeCredit:
		return "Crédito"
	default:
		return string(t)
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

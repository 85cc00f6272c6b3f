package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gasagency-backoffice/internal/application/report"
	"github.com/jhoicas/gasagency-backoffice/internal/domain"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
)

type fakeReports struct {
	pages []entity.Page[entity.ReportRow]
	asked []entity.ReportQuery
}

func (f *fakeReports) List(_ context.Context, _ entity.ReportKind, q entity.ReportQuery) (*entity.Page[entity.ReportRow], error) {
	f.asked = append(f.asked, q)
	p := f.pages[q.Page]
	return &p, nil
}

func (f *fakeReports) PeriodSummary(_ context.Context, from, to entity.Date) (*entity.PeriodSummary, error) {
	return &entity.PeriodSummary{From: from, To: to}, nil
}

type fakeLedger struct {
	entries []entity.LedgerEntry
	due     decimal.Decimal
}

func (f fakeLedger) ListByCustomer(context.Context, int64) ([]entity.LedgerEntry, error) {
	return f.entries, nil
}

func (f fakeLedger) GetDue(_ context.Context, id int64) (*entity.CustomerDue, error) {
	return &entity.CustomerDue{CustomerID: id, DueAmount: f.due}, nil
}

type fakeCustomers struct{}

func (fakeCustomers) GetByID(_ context.Context, id int64) (*entity.Customer, error) {
	return &entity.Customer{ID: id, Name: "Ramesh Gas Agency"}, nil
}

type captureRenderer struct {
	statement *report.LedgerStatement
	rows      []entity.ReportRow
}

func (c *captureRenderer) LedgerStatementPDF(_ context.Context, st *report.LedgerStatement) ([]byte, error) {
	c.statement = st
	return []byte("%PDF"), nil
}

func (c *captureRenderer) PeriodSummaryPDF(context.Context, *entity.PeriodSummary) ([]byte, error) {
	return []byte("%PDF"), nil
}

func (c *captureRenderer) LedgerStatementXLSX(_ context.Context, st *report.LedgerStatement) ([]byte, error) {
	c.statement = st
	return []byte("PK"), nil
}

func (c *captureRenderer) ReportXLSX(_ context.Context, _ entity.ReportKind, rows []entity.ReportRow) ([]byte, error) {
	c.rows = rows
	return []byte("PK"), nil
}

func entry(id int64, d int, ref entity.RefType, total, received, due string) entity.LedgerEntry {
	return entity.LedgerEntry{
		ID: id, RefType: ref, TransactionDate: entity.NewDate(2024, time.March, d),
		TotalAmount: decimal.RequireFromString(total), AmountReceived: decimal.RequireFromString(received),
		DueAmount: decimal.RequireFromString(due),
	}
}

func TestStatement_SaldoAcumuladoCronologico(t *testing.T) {
	led := fakeLedger{
		entries: []entity.LedgerEntry{
			entry(3, 3, entity.RefTypePayment, "0", "1500", "3500"),
			entry(1, 1, entity.RefTypeSale, "2000", "0", "2000"),
			entry(2, 2, entity.RefTypeSale, "3000", "0", "5000"),
		},
		due: decimal.RequireFromString("3500"),
	}
	r := &captureRenderer{}
	svc := report.NewService(&fakeReports{}, led, fakeCustomers{}, r, r, nil)

	f, err := svc.LedgerPDF(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, report.ContentTypePDF, f.ContentType)

	st := r.statement
	require.Len(t, st.Lines, 3)
	assert.Equal(t, int64(1), st.Lines[0].Entry.ID)
	assert.True(t, st.Lines[1].Running.Equal(decimal.NewFromInt(5000)))
	assert.True(t, st.DerivedDue.Equal(decimal.NewFromInt(3500)))
	assert.False(t, st.Diverges())
}

func TestStatement_DivergenciaSeSenala(t *testing.T) {
	led := fakeLedger{
		entries: []entity.LedgerEntry{entry(1, 1, entity.RefTypeSale, "2000", "0", "2000")},
		due:     decimal.RequireFromString("1800"),
	}
	r := &captureRenderer{}
	svc := report.NewService(&fakeReports{}, led, fakeCustomers{}, r, r, nil)

	_, err := svc.LedgerXLSX(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, r.statement.Diverges())
	assert.True(t, r.statement.ServerDue.Equal(decimal.NewFromInt(1800)))
}

func TestExportXLSX_RecorreTodasLasPaginas(t *testing.T) {
	reports := &fakeReports{pages: []entity.Page[entity.ReportRow]{
		{Items: []entity.ReportRow{{"id": 1}, {"id": 2}}, TotalPages: 2},
		{Items: []entity.ReportRow{{"id": 3}}, TotalPages: 2, Page: 1},
	}}
	r := &captureRenderer{}
	svc := report.NewService(reports, fakeLedger{}, fakeCustomers{}, r, r, nil)

	f, err := svc.ExportXLSX(context.Background(), entity.ReportSales, entity.ReportQuery{
		From: entity.NewDate(2024, time.March, 1), To: entity.NewDate(2024, time.March, 31),
	})
	require.NoError(t, err)
	assert.Len(t, r.rows, 3)
	assert.Len(t, reports.asked, 2)
	assert.Equal(t, "sales_2024-03-01_2024-03-31.xlsx", f.Name)
}

func TestList_ValidaTipoYPeriodo(t *testing.T) {
	svc := report.NewService(&fakeReports{}, fakeLedger{}, fakeCustomers{}, nil, nil, nil)

	_, err := svc.List(context.Background(), "ventas-secretas", entity.ReportQuery{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.List(context.Background(), entity.ReportSales, entity.ReportQuery{
		From: entity.NewDate(2024, time.April, 1), To: entity.NewDate(2024, time.March, 1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

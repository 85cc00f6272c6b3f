package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gasagency-backoffice/internal/application/dto"
	"github.com/jhoicas/gasagency-backoffice/internal/application/entry"
	appledger "github.com/jhoicas/gasagency-backoffice/internal/application/ledger"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	apphttp "github.com/jhoicas/gasagency-backoffice/internal/interfaces/http"
)

type fakeLedger struct {
	entries []entity.LedgerEntry
	updates int
}

func (f *fakeLedger) ListByCustomer(context.Context, int64) ([]entity.LedgerEntry, error) {
	return f.entries, nil
}

func (f *fakeLedger) GetDue(_ context.Context, id int64) (*entity.CustomerDue, error) {
	return &entity.CustomerDue{CustomerID: id, DueAmount: decimal.NewFromInt(9999)}, nil
}

func (f *fakeLedger) UpdateEntry(context.Context, int64, entity.LedgerEntryUpdate) error {
	f.updates++
	return nil
}

type fakeTransactions struct{ payments int }

func (f *fakeTransactions) RecordSale(context.Context, entity.Sale) (*entity.Receipt, error) {
	return &entity.Receipt{ID: 1}, nil
}

func (f *fakeTransactions) RecordEmptyReturn(context.Context, entity.EmptyReturn) (*entity.Receipt, error) {
	return &entity.Receipt{ID: 1}, nil
}

func (f *fakeTransactions) RecordExpense(context.Context, entity.Expense) (*entity.Receipt, error) {
	return &entity.Receipt{ID: 1}, nil
}

func (f *fakeTransactions) RecordBankDeposit(context.Context, entity.BankDeposit) (*entity.Receipt, error) {
	return &entity.Receipt{ID: 1}, nil
}

func (f *fakeTransactions) RecordPayment(context.Context, entity.Payment) (*entity.Receipt, error) {
	f.payments++
	return &entity.Receipt{ID: 1}, nil
}

type cashOnly struct{}

func (cashOnly) Active(context.Context) ([]entity.PaymentMode, error) {
	return []entity.PaymentMode{{ID: 1, Name: "Efectivo", Code: "CASH", IsActive: true}}, nil
}

// ledgerEntries n entradas en días consecutivos; la última deja due pendiente.
func ledgerEntries(n int, lastDue int64) []entity.LedgerEntry {
	out := make([]entity.LedgerEntry, 0, n)
	for i := 1; i <= n; i++ {
		e := entity.LedgerEntry{
			ID: int64(i), CustomerID: 7, RefType: entity.RefTypeSale, FilledOut: 1, Balance: i,
			TotalAmount: decimal.NewFromInt(100), AmountReceived: decimal.NewFromInt(100),
			TransactionDate: entity.NewDate(2024, time.February, i),
		}
		if i == n {
			e.DueAmount = decimal.NewFromInt(lastDue)
		}
		out = append(out, e)
	}
	return out
}

func ledgerApp(repo *fakeLedger, tx *fakeTransactions) *fiber.App {
	uc := appledger.NewUseCase(repo, nil, 15, nil)
	svc := entry.NewService(entry.Deps{
		Gateway: tx,
		Modes:   cashOnly{},
		Dues:    uc,
		Now:     func() time.Time { return time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC) },
	})
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(nil)})
	apphttp.NewEntryHandler(svc).Mount(app.Group("/entries"))
	app.Put("/customers/:id/ledger/:entryId", apphttp.NewLedgerHandler(uc).UpdateEntry)
	return app
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestEntryHandler_PagoMayorAlSaldo_422(t *testing.T) {
	repo := &fakeLedger{entries: ledgerEntries(3, 500)}
	tx := &fakeTransactions{}
	app := ledgerApp(repo, tx)

	resp := send(t, app, http.MethodPost, "/entries/payment",
		`{"customerId":7,"amount":"600","paymentDate":"2024-03-15","paymentModeId":1}`)

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "OVERPAYMENT", body.Code)
	assert.Contains(t, body.Message, "500.00")
	assert.Zero(t, tx.payments)
}

func TestEntryHandler_PagoIgualAlSaldo_201(t *testing.T) {
	tx := &fakeTransactions{}
	app := ledgerApp(&fakeLedger{entries: ledgerEntries(3, 500)}, tx)

	resp := send(t, app, http.MethodPost, "/entries/payment",
		`{"customerId":7,"amount":"500","paymentDate":"2024-03-15","paymentModeId":1}`)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, 1, tx.payments)
}

func TestLedgerHandler_EntradaFueraDeVentana_422(t *testing.T) {
	repo := &fakeLedger{entries: ledgerEntries(20, 0)}
	app := ledgerApp(repo, &fakeTransactions{})

	resp := send(t, app, http.MethodPut, "/customers/7/ledger/1",
		`{"filledOut":2,"changeReason":"conteo corregido"}`)

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "NOT_EDITABLE", decodeError(t, resp).Code)
	assert.Zero(t, repo.updates)
}

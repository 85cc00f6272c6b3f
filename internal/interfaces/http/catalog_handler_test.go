package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gasagency-backoffice/internal/application/dto"
	"github.com/jhoicas/gasagency-backoffice/internal/domain"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/validation"
	apphttp "github.com/jhoicas/gasagency-backoffice/internal/interfaces/http"
)

type fakeWarehouses struct {
	items   []entity.Warehouse
	lastQ   entity.PageQuery
	deleted int64
}

func (f *fakeWarehouses) List(_ context.Context, q entity.PageQuery) (*entity.Page[entity.Warehouse], error) {
	f.lastQ = q
	return &entity.Page[entity.Warehouse]{Items: f.items, Page: q.Page, Size: q.Size, TotalElements: len(f.items), TotalPages: 1}, nil
}

func (f *fakeWarehouses) Active(context.Context) ([]entity.Warehouse, error) { return f.items, nil }

func (f *fakeWarehouses) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	for _, w := range f.items {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, &domain.APIError{Status: 404}
}

func (f *fakeWarehouses) Create(_ context.Context, in entity.WarehouseInput) (*entity.Warehouse, error) {
	if errs := validation.Struct(in); !errs.Empty() {
		return nil, errs
	}
	return &entity.Warehouse{ID: 10, Name: in.Name, IsActive: true}, nil
}

func (f *fakeWarehouses) Update(_ context.Context, id int64, in entity.WarehouseInput) (*entity.Warehouse, error) {
	return &entity.Warehouse{ID: id, Name: in.Name}, nil
}

func (f *fakeWarehouses) Delete(_ context.Context, id int64) error {
	f.deleted = id
	return nil
}

func catalogApp(f *fakeWarehouses) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(nil)})
	allow := func(c *fiber.Ctx) error { return c.Next() }
	apphttp.NewCatalogHandler[entity.Warehouse, entity.WarehouseInput](f).Mount(app.Group("/warehouses"), allow)
	return app
}

func send(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCatalogHandler_ListNormalizaPaginacion(t *testing.T) {
	f := &fakeWarehouses{items: []entity.Warehouse{{ID: 1, Name: "Central"}}}
	resp := send(t, catalogApp(f), http.MethodGet, "/warehouses?page=-1&size=500&search=cen", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.PageQuery{Page: 0, Size: 100, Search: "cen"}, f.lastQ)

	var page dto.PageResponse[entity.Warehouse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Central", page.Items[0].Name)
}

func TestCatalogHandler_CreateInvalido_Retorna400ConCampos(t *testing.T) {
	resp := send(t, catalogApp(&fakeWarehouses{}), http.MethodPost, "/warehouses", `{"location":"Pune"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Details, "name")
}

func TestCatalogHandler_Create_Retorna201(t *testing.T) {
	resp := send(t, catalogApp(&fakeWarehouses{}), http.MethodPost, "/warehouses", `{"name":"Norte"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCatalogHandler_GetByID_NoEncontrado(t *testing.T) {
	resp := send(t, catalogApp(&fakeWarehouses{}), http.MethodGet, "/warehouses/99", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCatalogHandler_IDInvalido(t *testing.T) {
	resp := send(t, catalogApp(&fakeWarehouses{}), http.MethodDelete, "/warehouses/abc", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCatalogHandler_Delete(t *testing.T) {
	f := &fakeWarehouses{}
	resp := send(t, catalogApp(f), http.MethodDelete, "/warehouses/7", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, int64(7), f.deleted)
}

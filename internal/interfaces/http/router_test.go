package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/benchmark-hub/internal/application/auth"
	"github.com/jhoicas/benchmark-hub/internal/application/dataset"
	"github.com/jhoicas/benchmark-hub/internal/application/dto"
	"github.com/jhoicas/benchmark-hub/internal/application/report"
	"github.com/jhoicas/benchmark-hub/internal/application/support"
	"github.com/jhoicas/benchmark-hub/internal/application/usecase"
	"github.com/jhoicas/benchmark-hub/internal/domain/category"
	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
	"github.com/jhoicas/benchmark-hub/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/benchmark-hub/internal/interfaces/http"
	"github.com/jhoicas/benchmark-hub/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type okProbe struct{}

func (okProbe) Probe(_ context.Context, website string) (*entity.WebsiteValidation, error) {
	return &entity.WebsiteValidation{Valid: true, FinalURL: website, Title: "Home"}, nil
}

type stubPDF struct{}

func (stubPDF) GenerateProgressPDF(_ context.Context, data report.ProgressData) ([]byte, error) {
	return []byte("%PDF-1.4 " + data.Benchmark.Name), nil
}

func newRouterApp(t *testing.T) *fiber.App {
	t.Helper()
	users := memory.NewUserRepo()
	clients := memory.NewClientRepo()
	benchmarks := memory.NewBenchmarkRepo()
	companies := memory.NewCompanyRepo()

	authUC := auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	companyUC := dataset.NewCompanyUseCase(companies, benchmarks, &memory.TxRunner{Companies: companies}, nil)
	supportUC := support.NewUseCase(companies, benchmarks, nil, okProbe{}, companyUC.Engine(),
		support.Config{Timeout: time.Second, Concurrency: 2}, logger.Nop())

	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		UserUC:      usecase.NewUserUseCase(users),
		ClientUC:    usecase.NewClientUseCase(clients, benchmarks),
		BenchmarkUC: usecase.NewBenchmarkUseCase(benchmarks, clients),
		CompanyUC:   companyUC,
		SupportUC:   supportUC,
		ReportUC:    report.NewUseCase(companyUC, stubPDF{}, ""),
		JWTSecret:   testJWTSecret,
	})
	return app
}

// call lanza la petición y devuelve status y cuerpo; out (opcional) recibe el JSON.
func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}, out interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, out), string(raw))
	}
	return resp.StatusCode, raw
}

// seedBenchmark crea cliente y benchmark como analyst y devuelve sus IDs.
func seedBenchmark(t *testing.T, app *fiber.App) (clientID, benchmarkID string) {
	t.Helper()
	analyst := tokenForRole(t, "analyst")

	var client dto.ClientResponse
	status, raw := call(t, app, http.MethodPost, "/api/clients", analyst, dto.CreateClientRequest{Name: "Retail SA"}, &client)
	require.Equal(t, http.StatusCreated, status, string(raw))

	var bench dto.BenchmarkResponse
	status, raw = call(t, app, http.MethodPost, "/api/benchmarks", analyst, map[string]interface{}{
		"client_id": client.ID, "name": "Q3 Retail", "target_score": 80,
	}, &bench)
	require.Equal(t, http.StatusCreated, status, string(raw))
	assert.Equal(t, entity.BenchmarkDraft, bench.Status)
	return client.ID, bench.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_AltaPublicaIgnoraRol(t *testing.T) {
	app := newRouterApp(t)

	var user dto.UserResponse
	status, _ := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "Ana@Example.com", Password: "secreto123", Role: "admin",
	}, &user)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, entity.RoleAnalyst, user.Role)
	assert.Equal(t, "ana@example.com", user.Email)

	var login dto.LoginResponse
	status, _ = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ana@example.com", Password: "secreto123"}, &login)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, login.Token)

	var me dto.UserResponse
	status, _ = call(t, app, http.MethodGet, "/api/auth/me", "Bearer "+login.Token, nil, &me)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, user.ID, me.ID)

	status, _ = call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "ana@example.com", Password: "secreto123"}, nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestRegister_ValidacionDetallaCampos(t *testing.T) {
	app := newRouterApp(t)

	var errResp dto.ErrorResponse
	status, _ := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "no-es-email", Password: "123"}, &errResp)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errResp.Code)
	assert.Contains(t, errResp.Fields, dto.FieldError{Field: "email", Rule: "email"})
	assert.Contains(t, errResp.Fields, dto.FieldError{Field: "password", Rule: "min"})
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	app := newRouterApp(t)
	status, _ := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "nadie@example.com", Password: "x"}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestUsers_SoloAdmin(t *testing.T) {
	app := newRouterApp(t)

	status, _ := call(t, app, http.MethodGet, "/api/users", tokenForRole(t, "analyst"), nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	var created dto.UserResponse
	status, _ = call(t, app, http.MethodPost, "/api/users", tokenForRole(t, "admin"), dto.RegisterRequest{
		Email: "viewer@example.com", Password: "secreto123", Role: "viewer",
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, entity.RoleViewer, created.Role)

	var list dto.UserListResponse
	status, _ = call(t, app, http.MethodGet, "/api/users", tokenForRole(t, "admin"), nil, &list)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, list.Items, 1)

	var updated dto.UserResponse
	status, _ = call(t, app, http.MethodPatch, "/api/users/"+created.ID+"/role", tokenForRole(t, "admin"), dto.UpdateUserRoleRequest{Role: "analyst"}, &updated)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, entity.RoleAnalyst, updated.Role)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clients / Benchmarks
// ──────────────────────────────────────────────────────────────────────────────

func TestClients_ViewerSoloLee(t *testing.T) {
	app := newRouterApp(t)
	viewer := tokenForRole(t, "viewer")

	status, raw := call(t, app, http.MethodPost, "/api/clients", viewer, dto.CreateClientRequest{Name: "X"}, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, string(raw), "FORBIDDEN")

	status, _ = call(t, app, http.MethodGet, "/api/clients", viewer, nil, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, app, http.MethodGet, "/api/clients", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestClients_BorradoConBenchmarksEsConflicto(t *testing.T) {
	app := newRouterApp(t)
	clientID, benchmarkID := seedBenchmark(t, app)

	status, _ := call(t, app, http.MethodDelete, "/api/clients/"+clientID, tokenForRole(t, "analyst"), nil, nil)
	assert.Equal(t, http.StatusForbidden, status, "solo admin borra clientes")

	status, _ = call(t, app, http.MethodDelete, "/api/clients/"+clientID, tokenForRole(t, "admin"), nil, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = call(t, app, http.MethodDelete, "/api/benchmarks/"+benchmarkID, tokenForRole(t, "admin"), nil, nil)
	require.Equal(t, http.StatusNoContent, status)

	status, _ = call(t, app, http.MethodGet, "/api/benchmarks/"+benchmarkID, tokenForRole(t, "viewer"), nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, app, http.MethodDelete, "/api/clients/"+clientID, tokenForRole(t, "admin"), nil, nil)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestBenchmarks_ListaFiltraPorEstadoValido(t *testing.T) {
	app := newRouterApp(t)
	clientID, _ := seedBenchmark(t, app)
	viewer := tokenForRole(t, "viewer")

	var list dto.BenchmarkListResponse
	status, _ := call(t, app, http.MethodGet, "/api/benchmarks?client_id="+clientID+"&status=draft", viewer, nil, &list)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, list.Items, 1)

	status, _ = call(t, app, http.MethodGet, "/api/benchmarks?status=borrador", viewer, nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRutas_IDMalFormadoEsValidacion(t *testing.T) {
	app := newRouterApp(t)
	_, benchmarkID := seedBenchmark(t, app)
	admin := tokenForRole(t, "admin")

	cases := []struct {
		method string
		path   string
		field  string
	}{
		{http.MethodGet, "/api/benchmarks/not-a-uuid", "id"},
		{http.MethodDelete, "/api/clients/not-a-uuid", "id"},
		{http.MethodGet, "/api/benchmarks/not-a-uuid/companies", "id"},
		{http.MethodGet, "/api/benchmarks/" + benchmarkID + "/companies/123", "companyId"},
		{http.MethodGet, "/api/benchmarks/not-a-uuid/report.pdf", "id"},
		{http.MethodPost, "/api/support/benchmarks/not-a-uuid/validate-websites", "id"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			var errResp dto.ErrorResponse
			status, raw := call(t, app, tc.method, tc.path, admin, nil, &errResp)
			require.Equal(t, http.StatusBadRequest, status, string(raw))
			assert.Equal(t, "VALIDATION", errResp.Code)
			assert.Equal(t, []dto.FieldError{{Field: tc.field, Rule: "uuid"}}, errResp.Fields)
		})
	}

	status, _ := call(t, app, http.MethodGet, "/api/benchmarks/"+uuid.NewString(), admin, nil, nil)
	assert.Equal(t, http.StatusNotFound, status, "UUID válido inexistente sigue siendo 404")
}

// ──────────────────────────────────────────────────────────────────────────────
// Dataset, progreso y reporte
// ──────────────────────────────────────────────────────────────────────────────

func TestDataset_ImportFiltroYProgreso(t *testing.T) {
	app := newRouterApp(t)
	_, benchmarkID := seedBenchmark(t, app)
	analyst := tokenForRole(t, "analyst")
	base := "/api/benchmarks/" + benchmarkID

	var imported dto.ImportCompaniesResponse
	status, raw := call(t, app, http.MethodPost, base+"/companies/import", analyst, dto.ImportCompaniesRequest{
		Mapping: dto.ColumnMapping{"name": "Empresa", "website": "Web", "country": "País"},
		Rows: []map[string]string{
			{"Empresa": "Acme", "Web": "https://acme.example", "País": "Colombia"},
			{"Empresa": "", "Web": "https://nadie.example"},
			{"Empresa": "Beta", "País": "Chile"},
		},
	}, &imported)
	require.Equal(t, http.StatusCreated, status, string(raw))
	assert.Equal(t, 2, imported.Created)
	require.Len(t, imported.Skipped, 1)
	assert.Equal(t, dataset.SkipMissingName, imported.Skipped[0].Reason)

	var list dto.CompanyListResponse
	status, _ = call(t, app, http.MethodGet, base+"/companies?filter=input.ready", analyst, nil, &list)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, 1, list.Filtered)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Acme", list.Items[0].Name)
	badge := list.Items[0].Categories[string(category.DimensionInput)]
	assert.Equal(t, category.KeyInputReady, badge.Key)
	assert.True(t, badge.Filtered)
	icon := list.Items[0].Icons[string(category.DimensionInput)]
	assert.Equal(t, category.KeyInputReady, icon.Key)
	assert.Equal(t, list.Items[0].ID, icon.EntityID)

	list = dto.CompanyListResponse{}
	status, _ = call(t, app, http.MethodGet, base+"/companies?country=chile", analyst, nil, &list)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Beta", list.Items[0].Name)

	list = dto.CompanyListResponse{}
	status, _ = call(t, app, http.MethodGet, base+"/companies?filter=input.ready&country=Chile", analyst, nil, &list)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, list.Items, "filtro por categoría y país se combinan")

	status, _ = call(t, app, http.MethodGet, base+"/companies?filter=INPUT.NOPE", analyst, nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, app, http.MethodGet, base+"/companies?filter=INPUT.READY,INPUT.NEW", analyst, nil, nil)
	assert.Equal(t, http.StatusBadRequest, status, "una sola categoría por dimensión")

	var progress dto.ProgressResponse
	status, _ = call(t, app, http.MethodGet, base+"/progress?dimension=INPUT", tokenForRole(t, "viewer"), nil, &progress)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, progress.Dimensions, 1)
	assert.Equal(t, 2, progress.Dimensions[0].Total)

	status, _ = call(t, app, http.MethodGet, base+"/progress?dimension=NOPE", analyst, nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSupport_ValidacionPorLoteYBackendAusente(t *testing.T) {
	app := newRouterApp(t)
	_, benchmarkID := seedBenchmark(t, app)
	analyst := tokenForRole(t, "analyst")

	var company dto.CompanyResponse
	status, _ := call(t, app, http.MethodPost, "/api/benchmarks/"+benchmarkID+"/companies", analyst,
		dto.CreateCompanyRequest{Name: "Acme", Website: "https://acme.example"}, &company)
	require.Equal(t, http.StatusCreated, status)

	var batch dto.BatchRunResponse
	status, _ = call(t, app, http.MethodPost, "/api/support/benchmarks/"+benchmarkID+"/validate-websites", analyst, nil, &batch)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, batch.Processed)
	assert.Equal(t, 1, batch.Succeeded)

	var got dto.CompanyResponse
	status, _ = call(t, app, http.MethodGet, "/api/benchmarks/"+benchmarkID+"/companies/"+company.ID, analyst, nil, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, category.KeyWebsiteValid, got.Categories[string(category.DimensionWebsite)].Key)

	status, raw := call(t, app, http.MethodPost, "/api/support/benchmarks/"+benchmarkID+"/companies/"+company.ID+"/web-search", analyst, nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, string(raw), "SUPPORT_UNAVAILABLE")

	status, _ = call(t, app, http.MethodPost, "/api/support/column-mapping", analyst, dto.ColumnMappingRequest{Headers: []string{"Empresa"}}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)

	status, _ = call(t, app, http.MethodPost, "/api/support/benchmarks/"+benchmarkID+"/validate-websites", tokenForRole(t, "viewer"), nil, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestReporte_DescargaPDF(t *testing.T) {
	app := newRouterApp(t)
	_, benchmarkID := seedBenchmark(t, app)

	req := httptest.NewRequest(http.MethodGet, "/api/benchmarks/"+benchmarkID+"/report.pdf", nil)
	req.Header.Set("Authorization", tokenForRole(t, "viewer"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `filename="progreso_q3_retail.pdf"`)

	status, _ := call(t, app, http.MethodGet, "/api/benchmarks/"+uuid.NewString()+"/report.pdf", tokenForRole(t, "viewer"), nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCategories_Taxonomia(t *testing.T) {
	app := newRouterApp(t)
	var dims []dto.TaxonomyDimensionDTO
	status, _ := call(t, app, http.MethodGet, "/api/categories", tokenForRole(t, "viewer"), nil, &dims)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, dims, len(category.Dimensions()))
	assert.Equal(t, category.DimensionInput, dims[0].Dimension)
	assert.NotEmpty(t, dims[0].Categories)
}

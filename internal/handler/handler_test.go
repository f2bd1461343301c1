package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"energen/internal/config"
	"energen/internal/dto"
	"energen/internal/middleware"
	"energen/internal/model"
	"energen/internal/repository/repotest"
	"energen/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

// ── Fixture ───────────────────────────────────────────────────────────────────

type denylist map[string]bool

func (d denylist) Revoke(_ context.Context, jti string, _ time.Duration) error {
	d[jti] = true
	return nil
}
func (d denylist) IsRevoked(_ context.Context, jti string) bool { return d[jti] }

type colaSpy struct{ jobs []dto.ReporteEmailJob }

func (q *colaSpy) EnqueueReporteEmail(_ context.Context, job dto.ReporteEmailJob) error {
	q.jobs = append(q.jobs, job)
	return nil
}

type fixture struct {
	r       *gin.Engine
	store   *repotest.Store
	cola    *colaSpy
	token   string
	refresh string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &config.Config{JWTSecret: "handler-test-secret", JWTExpirationHours: 8, JWTRefreshHours: 24, AppName: "EnerGen Finanzas"}
	store := repotest.NewStore()
	deny := denylist{}
	cola := &colaSpy{}

	authSvc := service.NewAuthService(store.Usuarios(), cfg, deny)
	clienteSvc := service.NewClienteService(store.Clientes(), nil)
	txSvc := service.NewTransaccionService(store.Transacciones(), store.Clientes(), nil)
	dashSvc := service.NewDashboardService(store.Clientes(), store.Transacciones(), nil, 0, nil)
	repSvc := service.NewReporteService(dashSvc, txSvc, cola, cfg.AppName)

	auth := NewAuthHandler(authSvc)
	clientes := NewClientesHandler(clienteSvc)
	txs := NewTransaccionesHandler(txSvc)
	dash := NewDashboardHandler(dashSvc)
	rep := NewReportesHandler(repSvc)

	r := gin.New()
	r.Use(middleware.Recovery(), middleware.ErrorHandler())
	v1 := r.Group("/v1")
	v1.POST("/auth/signup", auth.Signup)
	v1.POST("/auth/login", auth.Login)
	v1.POST("/auth/refresh", auth.Refresh)
	v1.GET("/metodos-pago", MetodosPago)

	p := v1.Group("", middleware.JWTAuth(cfg.JWTSecret, deny))
	p.POST("/auth/logout", auth.Logout)
	p.GET("/auth/me", auth.Me)
	p.PUT("/preferencias", auth.Preferencias)
	p.POST("/preferencias/tema", auth.AlternarTema)
	p.GET("/datos", dash.Datos)
	p.GET("/dashboard", dash.Estadisticas)
	p.GET("/clientes", clientes.Listar)
	p.POST("/clientes", clientes.Crear)
	p.DELETE("/clientes/:id", clientes.Eliminar)
	p.GET("/transacciones", txs.Listar)
	p.POST("/transacciones", txs.Crear)
	p.GET("/reportes/dashboard.pdf", rep.DashboardPDF)
	p.GET("/reportes/transacciones.xlsx", rep.TransaccionesXLSX)
	p.POST("/reportes/email", rep.Email)

	f := &fixture{r: r, store: store, cola: cola}
	w := f.do(t, http.MethodPost, "/v1/auth/signup", `{"email":"admin@energen.com","password":"admin123"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = f.do(t, http.MethodPost, "/v1/auth/login", `{"email":"admin@energen.com","password":"admin123"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	f.token = login.AccessToken
	f.refresh = login.RefreshToken
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	w := httptest.NewRecorder()
	f.r.ServeHTTP(w, req)
	return w
}

func (f *fixture) crearCliente(t *testing.T, nombre string) dto.ClienteResponse {
	t.Helper()
	w := f.do(t, http.MethodPost, "/v1/clientes", `{"name":"`+nombre+`","cuit":"30-1","phone":"11"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var c dto.ClienteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	return c
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

// ── Auth ──────────────────────────────────────────────────────────────────────

func TestAuth_Flujo(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/v1/auth/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin@energen.com", decode(t, w)["email"])

	w = f.do(t, http.MethodPost, "/v1/preferencias/tema", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dark", decode(t, w)["theme"])

	w = f.do(t, http.MethodPut, "/v1/preferencias", `{"view":"CLIENTS"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CLIENTS", decode(t, w)["view"])

	w = f.do(t, http.MethodPut, "/v1/preferencias", `{"view":"SETTINGS"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = f.do(t, http.MethodPost, "/v1/auth/logout", "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, http.MethodGet, "/v1/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code, "token revoked on logout")

	w = f.do(t, http.MethodPost, "/v1/auth/refresh", `{"refresh_token":"`+f.refresh+`"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "session refresh token revoked on logout")
}

func TestAuth_Errores(t *testing.T) {
	f := newFixture(t)
	f.token = ""

	w := f.do(t, http.MethodPost, "/v1/auth/login", `{"email":"admin@energen.com","password":"malmalmal"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, http.MethodPost, "/v1/auth/signup", `{"email":"admin@energen.com","password":"123456"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = f.do(t, http.MethodPost, "/v1/auth/signup", `{"email":"no-es-email","password":"1"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	fields := decode(t, w)["fields"].(map[string]any)
	assert.Equal(t, "email", fields["email"])
	assert.Equal(t, "min", fields["password"])

	w = f.do(t, http.MethodPost, "/v1/auth/login", `{`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodGet, "/v1/clientes", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ── Clientes ──────────────────────────────────────────────────────────────────

func TestClientes(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/v1/clientes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No hay clientes cargados.", decode(t, w)["empty_message"])

	c := f.crearCliente(t, "Tech Solutions SA")
	assert.Equal(t, "Tech Solutions SA", c.Name)

	w = f.do(t, http.MethodPost, "/v1/clientes", `{"name":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = f.do(t, http.MethodDelete, "/v1/clientes/no-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodDelete, "/v1/clientes/"+c.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, http.MethodDelete, "/v1/clientes/"+c.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Cliente no encontrado"}`, w.Body.String())
}

func TestClientes_FallaStore(t *testing.T) {
	f := newFixture(t)
	f.store.ErrCreate = errors.New("db")
	w := f.do(t, http.MethodPost, "/v1/clientes", `{"name":"X"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"Error al guardar."}`, w.Body.String())
}

// ── Transacciones ─────────────────────────────────────────────────────────────

func TestTransacciones_CrearYListar(t *testing.T) {
	f := newFixture(t)
	c := f.crearCliente(t, "Agro Pampa")

	w := f.do(t, http.MethodPost, "/v1/transacciones", `{
		"date":"2026-10-01","invoice_number":"A-0001","description":"Service anual",
		"client_id":"`+c.ID+`","payment_method":"CHEQUE","amount":"250000.00",
		"check_number":"777","bank_issuer":"Banco Galicia","check_payment_date":"2026-12-01"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var tx dto.TransaccionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tx))
	assert.Equal(t, "Agro Pampa", tx.ClientName)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(250000)))

	w = f.do(t, http.MethodPost, "/v1/transacciones", `{
		"date":"2026-10-02","invoice_number":"A-0002","description":"Repuestos",
		"client_id":"`+c.ID+`","payment_method":"EFECTIVO","amount":1000}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = f.do(t, http.MethodGet, "/v1/transacciones?metodo=CHEQUE", "")
	require.Equal(t, http.StatusOK, w.Code)
	var lista dto.ListaTransaccionesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lista))
	assert.Equal(t, 2, lista.Loaded)
	require.Len(t, lista.Transactions, 1)
	assert.Equal(t, "A-0001", lista.Transactions[0].InvoiceNumber)

	w = f.do(t, http.MethodGet, "/v1/transacciones?q=galicia", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lista))
	assert.Empty(t, lista.Transactions, "bank is not searched")
	assert.Equal(t, "No se encontraron resultados con los filtros actuales.", lista.EmptyMessage)
}

func TestTransacciones_Validacion(t *testing.T) {
	f := newFixture(t)
	c := f.crearCliente(t, "Agro Pampa")

	w := f.do(t, http.MethodPost, "/v1/transacciones", `{
		"date":"2026-10-01","invoice_number":"A-1","description":"x",
		"client_id":"","payment_method":"EFECTIVO","amount":10}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Por favor seleccione un cliente.", decode(t, w)["detail"])

	w = f.do(t, http.MethodPost, "/v1/transacciones", `{
		"date":"2026-10-01","invoice_number":"A-1","description":"x",
		"client_id":"`+c.ID+`","payment_method":"EFECTIVO","amount":-5}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "min", decode(t, w)["fields"].(map[string]any)["amount"])

	w = f.do(t, http.MethodPost, "/v1/transacciones", `{
		"date":"01/10/2026","invoice_number":"A-1","description":"x",
		"client_id":"`+c.ID+`","payment_method":"BITCOIN","amount":5}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	fields := decode(t, w)["fields"].(map[string]any)
	assert.Equal(t, "datetime", fields["date"])
	assert.Equal(t, "oneof", fields["payment_method"])

	w = f.do(t, http.MethodPost, "/v1/transacciones", `{
		"date":"2026-10-01","invoice_number":"A-1","description":"x",
		"client_id":"`+c.ID+`","payment_method":"E_CHEQ","amount":5}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode(t, w)["fields"], "check_number")

	txs, _ := f.store.Transacciones().List(context.Background())
	assert.Empty(t, txs)
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cl := &model.Cliente{Nombre: "Constructora Norte"}
	require.NoError(t, f.store.Clientes().Create(ctx, cl))
	require.NoError(t, f.store.Transacciones().Create(ctx, &model.Transaccion{
		Fecha: time.Now(), ClienteID: cl.ID, MetodoPago: model.MetodoEfectivo, Monto: decimal.NewFromInt(470000),
	}))

	w := f.do(t, http.MethodGet, "/v1/dashboard", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "MONTH", string(resp.Window))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(470000)))
	assert.True(t, resp.Cobrado.Equal(decimal.NewFromInt(470000)))
	assert.Len(t, resp.Serie, 1)

	w = f.do(t, http.MethodGet, "/v1/dashboard?ventana=week", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = f.do(t, http.MethodGet, "/v1/dashboard?ventana=YEAR", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = f.do(t, http.MethodGet, "/v1/datos", "")
	require.Equal(t, http.StatusOK, w.Code)
	var datos dto.DatosResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &datos))
	assert.Len(t, datos.Clients, 1)
	assert.Len(t, datos.Transactions, 1)
}

func TestDatos_CargaFallida(t *testing.T) {
	f := newFixture(t)
	f.store.ErrListTransacciones = errors.New("conn refused")

	w := f.do(t, http.MethodGet, "/v1/datos", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"detail":"No se pudieron cargar los datos."}`, w.Body.String())
}

// ── Reportes y catálogo ───────────────────────────────────────────────────────

func TestReportes(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/v1/reportes/dashboard.pdf?ventana=ALL", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "dashboard-all-")

	w = f.do(t, http.MethodGet, "/v1/reportes/transacciones.xlsx", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")), "xlsx is a zip")

	w = f.do(t, http.MethodPost, "/v1/reportes/email", `{"email":"jefe@energen.com","window":"WEEK"}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, f.cola.jobs, 1)
	assert.Equal(t, "WEEK", f.cola.jobs[0].Window)

	w = f.do(t, http.MethodPost, "/v1/reportes/email", `{"email":"jefe@energen.com","window":"all"}`)
	require.Equal(t, http.StatusAccepted, w.Code, "window is case-insensitive like ?ventana=")
	require.Len(t, f.cola.jobs, 2)
	assert.Equal(t, "ALL", f.cola.jobs[1].Window)

	w = f.do(t, http.MethodPost, "/v1/reportes/email", `{"email":"jefe@energen.com","window":"YEAR"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode(t, w)["fields"], "window")

	w = f.do(t, http.MethodPost, "/v1/reportes/email", `{"email":"x"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMetodosPago(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/v1/metodos-pago", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"value":"EFECTIVO","label":"Efectivo"},
		{"value":"TRANSFERENCIA","label":"Transferencia Bancaria"},
		{"value":"CHEQUE","label":"Cheque Físico"},
		{"value":"E_CHEQ","label":"E-Cheq"}
	]`, w.Body.String())
}

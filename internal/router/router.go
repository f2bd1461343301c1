package router

import (
	"context"
	"time"

	"energen/internal/config"
	"energen/internal/handler"
	"energen/internal/infra"
	"energen/internal/middleware"
	"energen/internal/repository"
	"energen/internal/service"
	"energen/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services is the service layer shared by the HTTP routes and the workers.
type Services struct {
	Auth          service.AuthService
	Clientes      service.ClienteService
	Transacciones service.TransaccionService
	Dashboard     service.DashboardService
	Reportes      service.ReporteService

	denylist *infra.TokenDenylist
}

// NewServices wires Service ← Repository ← DB/Redis.
func NewServices(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *Services {
	// ── Infrastructure ───────────────────────────────────────────────────────
	cache := infra.NewJSONCache(rdb)
	denylist := infra.NewTokenDenylist(rdb)
	dispatcher := worker.NewDispatcher(rdb)
	ttl := time.Duration(cfg.DashboardCacheTTLSeconds) * time.Second

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	transaccionRepo := repository.NewTransaccionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	s := &Services{denylist: denylist}
	s.Auth = service.NewAuthService(usuarioRepo, cfg, denylist)
	s.Clientes = service.NewClienteService(clienteRepo, cache)
	s.Transacciones = service.NewTransaccionService(transaccionRepo, clienteRepo, cache)
	s.Dashboard = service.NewDashboardService(clienteRepo, transaccionRepo, cache, ttl, nil)
	s.Reportes = service.NewReporteService(s.Dashboard, s.Transacciones, dispatcher, cfg.AppName)
	return s
}

// New returns a configured Gin engine. Background housekeeping started here
// stops when ctx is cancelled.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client, svcs *Services) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	apiLimiter := middleware.NewRateLimiter(1000, time.Minute, "Demasiadas solicitudes. Intente nuevamente en un momento.")
	loginLimiter := middleware.NewLoginRateLimiter()
	go apiLimiter.RunPurge(ctx, 5*time.Minute)
	go loginLimiter.RunPurge(ctx, 5*time.Minute)

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()...))
	r.Use(middleware.ErrorHandler())
	r.Use(apiLimiter.Middleware()) // 1000 req/min per IP

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(svcs.Auth)
	clientesH := handler.NewClientesHandler(svcs.Clientes)
	transaccionesH := handler.NewTransaccionesHandler(svcs.Transacciones)
	dashboardH := handler.NewDashboardHandler(svcs.Dashboard)
	reportesH := handler.NewReportesHandler(svcs.Reportes)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/v1/metodos-pago", handler.MetodosPago)

	auth := r.Group("/v1/auth")
	{
		auth.POST("/signup", authH.Signup)
		auth.POST("/login", loginLimiter.Middleware(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret, svcs.denylist))
	{
		v1.POST("/auth/logout", authH.Logout)
		v1.GET("/auth/me", authH.Me)

		v1.PUT("/preferencias", authH.Preferencias)
		v1.POST("/preferencias/tema", authH.AlternarTema)

		v1.GET("/datos", dashboardH.Datos)
		v1.GET("/dashboard", dashboardH.Estadisticas)

		clientes := v1.Group("/clientes")
		{
			clientes.GET("", clientesH.Listar)
			clientes.POST("", clientesH.Crear)
			clientes.DELETE("/:id", clientesH.Eliminar)
		}

		v1.GET("/transacciones", transaccionesH.Listar)
		v1.POST("/transacciones", transaccionesH.Crear)

		reportes := v1.Group("/reportes")
		{
			reportes.GET("/dashboard.pdf", reportesH.DashboardPDF)
			reportes.GET("/transacciones.xlsx", reportesH.TransaccionesXLSX)
			reportes.POST("/email", reportesH.Email)
		}
	}

	// Swagger UI, only outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

// cmd/seed: creates the demo user and, with -demo, the sample clients and
// invoices.
// Uso: go run ./cmd/seed -demo
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"energen/internal/config"
	"energen/internal/dto"
	"energen/internal/infra"
	"energen/internal/repository"
	"energen/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type demoCliente struct {
	nombre, cuit, telefono string
}

type demoTransaccion struct {
	cliente     int // index into demoClientes
	fecha       string
	factura     string
	descripcion string
	metodo      string
	monto       int64
	cheque      *demoCheque
}

type demoCheque struct {
	numero, banco, cobro string
}

var demoClientes = []demoCliente{
	{"Constructora del Sur S.A.", "30-11223344-5", "11-4455-6677"},
	{"Edificios Modernos SRL", "30-99887766-1", "11-2233-4455"},
	{"Industrias Metalúrgicas", "33-55667788-9", "02320-445566"},
}

var demoTransacciones = []demoTransaccion{
	{0, "2023-10-25", "0001-00000452", "Mantenimiento preventivo Grupo Electrógeno CAT 500kVA", "TRANSFERENCIA", 150000, nil},
	{1, "2023-10-26", "0001-00000453", "Reparación de tablero de transferencia automática", "E_CHEQ", 320000,
		&demoCheque{"99881122", "Banco Galicia", "2023-11-20"}},
}

func main() {
	email := flag.String("email", "admin@energen.com", "email del usuario demo")
	password := flag.String("password", "admin123", "contraseña del usuario demo")
	demo := flag.Bool("demo", false, "cargar clientes y facturas de ejemplo")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := infra.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	ctx := context.Background()
	clienteRepo := repository.NewClienteRepository(db)
	authSvc := service.NewAuthService(repository.NewUsuarioRepository(db), cfg, nil)

	_, err = authSvc.Registrar(ctx, dto.SignupRequest{Email: *email, Password: *password})
	switch {
	case errors.Is(err, service.ErrEmailRegistrado):
		log.Info().Str("email", *email).Msg("seed: usuario demo ya existe")
	case err != nil:
		log.Fatal().Err(err).Msg("seed: no se pudo crear el usuario demo")
	default:
		log.Info().Str("email", *email).Msg("seed: usuario demo creado")
	}

	if !*demo {
		return
	}

	existentes, err := clienteRepo.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("seed: listando clientes")
	}
	if len(existentes) > 0 {
		log.Info().Int("clientes", len(existentes)).Msg("seed: ya hay datos, se omite la carga demo")
		return
	}

	clienteSvc := service.NewClienteService(clienteRepo, nil)
	txSvc := service.NewTransaccionService(repository.NewTransaccionRepository(db), clienteRepo, nil)

	ids := make([]string, len(demoClientes))
	for i, c := range demoClientes {
		resp, err := clienteSvc.Crear(ctx, dto.CrearClienteRequest{Name: c.nombre, CUIT: c.cuit, Phone: c.telefono})
		if err != nil {
			log.Fatal().Err(err).Str("cliente", c.nombre).Msg("seed: alta de cliente")
		}
		ids[i] = resp.ID
	}
	for _, t := range demoTransacciones {
		req := dto.CrearTransaccionRequest{
			Date:          t.fecha,
			InvoiceNumber: t.factura,
			Description:   t.descripcion,
			ClientID:      ids[t.cliente],
			PaymentMethod: t.metodo,
			Amount:        decimal.NewFromInt(t.monto),
		}
		if t.cheque != nil {
			req.CheckNumber = &t.cheque.numero
			req.BankIssuer = &t.cheque.banco
			req.CheckPaymentDate = &t.cheque.cobro
		}
		if _, err := txSvc.Crear(ctx, req); err != nil {
			log.Fatal().Err(err).Str("factura", t.factura).Msg("seed: alta de factura")
		}
	}
	log.Info().Int("clientes", len(demoClientes)).Int("facturas", len(demoTransacciones)).Msg("seed: datos demo cargados")
}

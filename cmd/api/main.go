package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Abastecimiento-api/internal/application/auth"
	"github.com/jhoicas/Abastecimiento-api/internal/application/inventory"
	"github.com/jhoicas/Abastecimiento-api/internal/application/ports"
	"github.com/jhoicas/Abastecimiento-api/internal/application/procurement"
	"github.com/jhoicas/Abastecimiento-api/internal/application/usecase"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/repository"
	infraai "github.com/jhoicas/Abastecimiento-api/internal/infrastructure/ai"
	infracache "github.com/jhoicas/Abastecimiento-api/internal/infrastructure/cache"
	"github.com/jhoicas/Abastecimiento-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Abastecimiento-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Abastecimiento-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Abastecimiento-api/internal/interfaces/http"
	"github.com/jhoicas/Abastecimiento-api/pkg/config"
	"github.com/jhoicas/Abastecimiento-api/pkg/logger"
)

// storage repositorios y runner de transacciones del driver elegido.
type storage struct {
	tx        ports.TxRunner
	users     repository.UserRepository
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	orders    repository.PurchaseOrderRepository
	logs      repository.InventoryLogRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: login y rutas protegidas no funcionarán")
	}

	ctx := context.Background()

	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("inicializar almacenamiento")
	}
	defer store.close()

	// Narrativa: Anthropic si hay API key, con caché Redis opcional. Sin key solo textos de respaldo.
	var narrative ports.NarrativeGenerator
	if cfg.AI.APIKey != "" {
		narrative = infraai.NewAnthropicNarrator(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL)
		if cfg.Redis.Addr != "" {
			rdb, err := infracache.NewRedisClient(ctx, cfg.Redis)
			if err != nil {
				log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, narrativa sin caché")
			} else {
				defer rdb.Close()
				narrative = infracache.NewCachedNarrator(narrative, rdb, cfg.Redis.CacheTTL())
			}
		}
	} else {
		log.Warn().Msg("ANTHROPIC_API_KEY vacío: se usarán textos de respaldo")
	}

	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	deps := httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        usecase.NewUserUseCase(store.users),
		ProductUC:     usecase.NewProductUseCase(store.tx, store.products),
		LedgerUC:      inventory.NewLedgerUseCase(store.tx, store.products, store.logs),
		ProcurementUC: procurement.NewProcurementUseCase(store.tx, narrative, cfg.AI.Timeout()),
		SupplierUC:    procurement.NewSupplierUseCase(store.tx, store.suppliers, store.orders, narrative, cfg.AI.Timeout()),
		PurchaseOrder: procurement.NewPurchaseOrderUseCase(
			store.tx, store.orders, store.suppliers, store.products, infrapdf.NewPurchaseOrderRenderer(),
		),
		JWTSecret: cfg.JWT.Secret,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Abastecimiento API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage construye los repositorios del driver configurado. Con postgres aplica las migraciones.
func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		s := memory.NewStore()
		return &storage{
			tx:        memory.NewTxRunner(s),
			users:     memory.NewUserRepository(s),
			products:  memory.NewProductRepository(s),
			suppliers: memory.NewSupplierRepository(s),
			orders:    memory.NewPurchaseOrderRepository(s),
			logs:      memory.NewInventoryLogRepository(s),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &storage{
		tx:        postgres.NewTxRunner(pool),
		users:     postgres.NewUserRepository(pool),
		products:  postgres.NewProductRepository(pool),
		suppliers: postgres.NewSupplierRepository(pool),
		orders:    postgres.NewPurchaseOrderRepository(pool),
		logs:      postgres.NewInventoryLogRepository(pool),
		close:     pool.Close,
	}, nil
}

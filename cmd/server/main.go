package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	catalogapp "github.com/shopmall/backend/internal/application/catalog"
	logisticsapp "github.com/shopmall/backend/internal/application/logistics"
	"github.com/shopmall/backend/internal/application/media"
	memberapp "github.com/shopmall/backend/internal/application/member"
	paymentapp "github.com/shopmall/backend/internal/application/payment"
	storeapp "github.com/shopmall/backend/internal/application/store"
	supportapp "github.com/shopmall/backend/internal/application/support"
	tradeapp "github.com/shopmall/backend/internal/application/trade"
	"github.com/shopmall/backend/internal/domain/payment"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/internal/infrastructure/auth"
	"github.com/shopmall/backend/internal/infrastructure/cache"
	"github.com/shopmall/backend/internal/infrastructure/config"
	"github.com/shopmall/backend/internal/infrastructure/event"
	"github.com/shopmall/backend/internal/infrastructure/logger"
	"github.com/shopmall/backend/internal/infrastructure/migration"
	paymentinfra "github.com/shopmall/backend/internal/infrastructure/payment"
	"github.com/shopmall/backend/internal/infrastructure/persistence"
	"github.com/shopmall/backend/internal/infrastructure/recaptcha"
	"github.com/shopmall/backend/internal/infrastructure/storage"
	"github.com/shopmall/backend/internal/infrastructure/telemetry"
	"github.com/shopmall/backend/internal/interfaces/http/handler"
	"github.com/shopmall/backend/internal/interfaces/http/middleware"
	"github.com/shopmall/backend/internal/interfaces/http/router"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	_ "github.com/shopmall/backend/docs"
)

//go:generate go run github.com/swaggo/swag/v2/cmd/swag@v2.0.0-rc5 init -d ../.. -g cmd/server/main.go -o ../../docs --outputTypes go,json --parseInternal

//	@title			Shop Backend API
//	@version		1.0
//	@description	Multi-vendor shop backend: catalog, shops, orders, shipments, payments and chat

//	@host		localhost:8080
//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	providers, err := telemetry.Setup(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()
	log = telemetry.BridgeLogger(log, providers.Logs, cfg.App.Name, logger.ParseLevel(cfg.Log.Level))

	log.Info("Starting shop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(time.Duration(cfg.Database.SlowQueryMs)*time.Millisecond))
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.InstrumentDB(db.DB, cfg.Telemetry, cfg.Database.Driver, log); err != nil {
		log.Fatal("Failed to instrument database", zap.Error(err))
	}
	if err := migrateSchema(cfg, db, log); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	repos := persistence.NewRepositorySet(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)

	stores := cache.NewStoreFactory(cfg.Redis, cache.WithLogger(log))
	defer func() {
		_ = stores.Close()
	}()
	idempotency, err := stores.CreateIdempotencyStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	blacklist, err := stores.CreateTokenBlacklist()
	if err != nil {
		log.Fatal("Failed to create token blacklist", zap.Error(err))
	}

	publisher, closePublisher := newPublisher(cfg, providers, log)
	defer closePublisher()

	mediaService := media.NewService(newObjectStorage(ctx, cfg, log), media.DefaultConfig(), log)
	gateway := newGateway(cfg, log)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := memberapp.NewAuthService(repos.Users(), jwtService, blacklist, log)
	recaptchaService := memberapp.NewRecaptchaService(newCaptchaVerifier(cfg, log), log)

	var notifyService *paymentapp.NotifyService
	if gateway != nil {
		notifyService = paymentapp.NewNotifyService(gateway, scope, idempotency, publisher, paymentapp.NotifyConfig{
			PaidStatusID:   cfg.ECPay.PaidStatusID,
			FailedStatusID: cfg.ECPay.FailedStatusID,
			IdempotencyTTL: cfg.ECPay.IdempotencyTTL,
		}, log)
	}

	handlers := router.Handlers{
		ParentCategory: handler.NewParentCategoryHandler(catalogapp.NewParentCategoryService(repos.ParentCategories(), scope)),
		ChildCategory:  handler.NewChildCategoryHandler(catalogapp.NewChildCategoryService(repos.ChildCategories(), repos.ParentCategories(), scope)),
		Product:        handler.NewProductHandler(catalogapp.NewProductService(repos.Products(), repos.Shops(), repos.ChildCategories(), scope, mediaService)),
		Shop:           handler.NewShopHandler(storeapp.NewShopService(repos.Shops(), repos.Users(), scope, mediaService)),
		Coupon:         handler.NewCouponHandler(storeapp.NewCouponService(repos.Coupons(), repos.Shops(), scope)),
		User:           handler.NewUserHandler(memberapp.NewUserService(repos.Users(), scope, recaptchaService, authService, log)),
		UserAddress:    handler.NewUserAddressHandler(memberapp.NewUserAddressService(repos.UserAddresses(), repos.Users(), scope)),
		Order:          handler.NewOrderHandler(tradeapp.NewOrderService(repos.Orders(), repos.Users(), repos.Shops(), scope, publisher, log)),
		ShipmentMethod: handler.NewShipmentMethodHandler(logisticsapp.NewShipmentMethodService(repos.ShipmentMethods(), scope)),
		ShipmentStatus: handler.NewShipmentStatusHandler(logisticsapp.NewShipmentStatusService(repos.ShipmentStatuses(), scope)),
		Shipment:       handler.NewShipmentHandler(logisticsapp.NewShipmentService(repos.Shipments(), repos.Orders(), scope)),
		PaymentMethod:  handler.NewPaymentMethodHandler(paymentapp.NewPaymentMethodService(repos.PaymentMethods(), scope)),
		PaymentStatus:  handler.NewPaymentStatusHandler(paymentapp.NewPaymentStatusService(repos.PaymentStatuses(), scope)),
		Payment:        handler.NewPaymentHandler(paymentapp.NewPaymentService(repos.Payments(), repos.Orders(), scope, gateway, cfg.ECPay.ItemDescription, log)),
		Chat:           handler.NewChatHandler(supportapp.NewChatMessageService(repos.ChatMessages(), repos.Shops(), repos.Users(), scope)),
		Auth:           handler.NewAuthHandler(authService),
		Recaptcha:      handler.NewRecaptchaHandler(recaptchaService),
		Notify:         handler.NewNotifyHandler(notifyService),
		Health:         handler.NewHealthHandler(db),
	}

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	var rateLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		rateLimiter.StartCleanup(ctx)
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}
	if !cfg.Auth.Enabled {
		log.Warn("Authentication is disabled; every route is open")
	}

	opts := router.Options{
		Logger:        log,
		HTTP:          cfg.HTTP,
		AuthEnabled:   cfg.Auth.Enabled,
		Authenticator: authService,
		RateLimiter:   rateLimiter,
		Swagger:       cfg.Swagger.Enabled,
		ServiceName:   cfg.Telemetry.ServiceName,
		Tracing:       providers.Tracer != nil,
		Profiling:     providers.Profiler != nil,
	}
	if providers.Meter != nil {
		opts.MeterProvider = providers.Meter
	}
	engine, err := router.NewEngine(opts, handlers)
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// migrateSchema applies the embedded migrations on PostgreSQL. SQLite gets the GORM schema instead.
func migrateSchema(cfg *config.Config, db *persistence.Database, log *zap.Logger) error {
	if !cfg.Database.AutoMigrate {
		return nil
	}
	if cfg.Database.Driver == "sqlite" {
		return persistence.AutoMigrate(db.DB)
	}

	// the migrator closes the handle it is given, so it gets its own
	conn, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return err
	}
	m, err := migration.New(conn, log)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer func() {
		_ = m.Close()
	}()
	return m.Up()
}

// newPublisher returns the Kafka publisher when enabled, wrapped so every event also feeds the shop metrics
func newPublisher(cfg *config.Config, providers *telemetry.Providers, log *zap.Logger) (shared.EventPublisher, func()) {
	var next shared.EventPublisher = shared.NoopEventPublisher{}
	closeFn := func() {}
	if cfg.Kafka.Enabled {
		kafka, err := event.NewKafkaPublisher(cfg.Kafka, log)
		if err != nil {
			log.Fatal("Failed to connect to Kafka", zap.Error(err))
		}
		next = kafka
		closeFn = func() {
			if err := kafka.Close(); err != nil {
				log.Error("Error closing Kafka producer", zap.Error(err))
			}
		}
		log.Info("Kafka event publishing enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	var provider metric.MeterProvider = otel.GetMeterProvider()
	if providers.Meter != nil {
		provider = providers.Meter
	}
	metrics, err := telemetry.NewShopMetrics(provider)
	if err != nil {
		log.Warn("Shop metrics unavailable", zap.Error(err))
		return next, closeFn
	}
	return telemetry.NewMeteredPublisher(next, metrics), closeFn
}

func newObjectStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) media.ObjectStorageService {
	if !cfg.Storage.Enabled {
		log.Info("Object storage disabled, using stub URLs")
		return storage.NewStubObjectStorage("")
	}
	s3, err := storage.NewS3ObjectStorage(ctx, cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	if err := s3.EnsureBucket(ctx); err != nil {
		log.Warn("Object storage bucket check failed", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
	}
	return s3
}

// newGateway returns nil when ECPay is not configured; checkout and notify then report it.
func newGateway(cfg *config.Config, log *zap.Logger) payment.Gateway {
	if cfg.ECPay.MerchantID == "" {
		log.Warn("ECPay is not configured; checkout and payment notifications are disabled")
		return nil
	}
	gateway, err := paymentinfra.NewECPayAdapter(cfg.ECPay)
	if err != nil {
		log.Fatal("Invalid ECPay configuration", zap.Error(err))
	}
	return gateway
}

func newCaptchaVerifier(cfg *config.Config, log *zap.Logger) memberapp.CaptchaVerifier {
	if !cfg.Recaptcha.Enabled {
		return nil
	}
	client, err := recaptcha.NewClient(cfg.Recaptcha)
	if err != nil {
		log.Fatal("Invalid reCAPTCHA configuration", zap.Error(err))
	}
	return client
}

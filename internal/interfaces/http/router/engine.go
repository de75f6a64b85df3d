package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopmall/backend/internal/domain/member"
	"github.com/shopmall/backend/internal/infrastructure/config"
	"github.com/shopmall/backend/internal/infrastructure/logger"
	"github.com/shopmall/backend/internal/interfaces/http/handler"
	"github.com/shopmall/backend/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// NotifyPath receives ECPay's server-to-server payment results
const NotifyPath = "/payment/notify"

// Handlers are the HTTP handlers of every resource family
type Handlers struct {
	ParentCategory *handler.ParentCategoryHandler
	ChildCategory  *handler.ChildCategoryHandler
	Product        *handler.ProductHandler
	Shop           *handler.ShopHandler
	Coupon         *handler.CouponHandler
	User           *handler.UserHandler
	UserAddress    *handler.UserAddressHandler
	Order          *handler.OrderHandler
	ShipmentMethod *handler.ShipmentMethodHandler
	ShipmentStatus *handler.ShipmentStatusHandler
	Shipment       *handler.ShipmentHandler
	PaymentMethod  *handler.PaymentMethodHandler
	PaymentStatus  *handler.PaymentStatusHandler
	Payment        *handler.PaymentHandler
	Chat           *handler.ChatHandler
	Auth           *handler.AuthHandler
	Recaptcha      *handler.RecaptchaHandler
	Notify         *handler.NotifyHandler
	Health         *handler.HealthHandler
}

// Options configures the engine middleware chain
type Options struct {
	Logger        *zap.Logger
	HTTP          config.HTTPConfig
	AuthEnabled   bool
	Authenticator middleware.Authenticator
	RateLimiter   *middleware.RateLimiter
	Swagger       bool

	// Tracing, metrics and profiling middleware are installed when set
	ServiceName   string
	Tracing       bool
	MeterProvider metric.MeterProvider
	Profiling     bool
}

// NewEngine builds the gin engine with the global middleware chain and every route mounted
func NewEngine(opts Options, h Handlers) (*gin.Engine, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if len(opts.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(opts.HTTP.TrustedProxies); err != nil {
			return nil, fmt.Errorf("invalid trusted proxies: %w", err)
		}
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log, logger.WithQuietPaths("/health")),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORS(corsConfig(opts.HTTP)),
	)
	// the notify route answers the gateway in plain text and limits its own body
	if opts.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.ExceptRoutes(middleware.BodyLimit(opts.HTTP.MaxBodySize), NotifyPath))
	}
	if opts.RateLimiter != nil {
		engine.Use(middleware.ExceptRoutes(middleware.RateLimit(opts.RateLimiter), NotifyPath))
	}
	if opts.Tracing {
		engine.Use(middleware.Tracing(opts.ServiceName), middleware.SpanAttributes())
	}
	if opts.MeterProvider != nil {
		metrics, err := middleware.HTTPMetrics(opts.MeterProvider)
		if err != nil {
			return nil, fmt.Errorf("failed to create http metrics: %w", err)
		}
		engine.Use(metrics)
	}
	if opts.Profiling {
		engine.Use(middleware.Profiling())
	}

	if h.Health != nil {
		engine.GET("/health", h.Health.Health)
	}
	if opts.Swagger {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if h.Notify != nil {
		engine.POST(NotifyPath, h.Notify.Guard(opts.HTTP.MaxBodySize), h.Notify.Notify)
	}

	NewRouter(engine).Register(APIGroups(opts, h)...).Setup()
	return engine, nil
}

// APIGroups returns the groups mounted under /api. Nil handlers are skipped.
func APIGroups(opts Options, h Handlers) []RouteRegistrar {
	requireAuth := middleware.RequireAuth(opts.Authenticator, opts.AuthEnabled)
	requireAdmin := middleware.RequireRole(opts.AuthEnabled, member.RoleAdmin)

	var groups []RouteRegistrar
	add := func(g *DomainGroup) {
		groups = append(groups, g)
	}
	// lookup tables are maintained by administrators
	lookup := func(g *DomainGroup) {
		add(g.GuardWrites(requireAuth, requireAdmin))
	}

	if h.ParentCategory != nil {
		lookup(Entity("category1", "/category1", h.ParentCategory))
	}
	if h.ChildCategory != nil {
		lookup(Entity("category2", "/category2", h.ChildCategory).
			GET("/byParent", h.ChildCategory.GetByParent))
	}
	if h.User != nil {
		g := NewDomainGroup("users", "/users").
			GET("/all", h.User.GetAll).
			GET("/:id", h.User.GetByID).
			POST("", h.User.Create).
			PUT("/:id", requireAuth, h.User.Update).
			DELETE("/:id", requireAuth, h.User.Delete)
		add(g)
	}
	if h.UserAddress != nil {
		add(Entity("user-addresses", "/user-addresses", h.UserAddress).
			GET("/byUser", h.UserAddress.GetByUser).
			GuardWrites(requireAuth))
	}
	if h.Shop != nil {
		add(Entity("shops", "/shops", h.Shop).
			GET("/byOwner", h.Shop.GetByOwner).
			POST("/:id/logo-upload-url", h.Shop.LogoUploadURL).
			GuardWrites(requireAuth))
	}
	if h.Product != nil {
		add(Entity("products", "/products", h.Product).
			GET("/byShop", h.Product.GetByShop).
			GET("/byCategory2", h.Product.GetByCategory2).
			POST("/:id/image-upload-url", h.Product.ImageUploadURL).
			GuardWrites(requireAuth))
	}
	if h.Coupon != nil {
		add(Entity("coupons", "/coupons", h.Coupon).
			GET("/byShop", h.Coupon.GetByShop).
			GuardWrites(requireAuth))
	}
	if h.Order != nil {
		add(Entity("orders", "/orders", h.Order).
			GET("/byUser", h.Order.GetByUser).
			GET("/byShop", h.Order.GetByShop).
			GuardWrites(requireAuth))
	}
	if h.ShipmentMethod != nil {
		lookup(Entity("shipment-methods", "/shipment-methods", h.ShipmentMethod))
	}
	if h.ShipmentStatus != nil {
		lookup(Entity("shipment-statuses", "/shipment-statuses", h.ShipmentStatus))
	}
	if h.Shipment != nil {
		add(Entity("shipments", "/shipments", h.Shipment).
			GET("/byOrder", h.Shipment.GetByOrder).
			GuardWrites(requireAuth))
	}
	if h.PaymentMethod != nil {
		lookup(Entity("payment-methods", "/payment-methods", h.PaymentMethod))
	}
	if h.PaymentStatus != nil {
		lookup(Entity("payment-statuses", "/payment-statuses", h.PaymentStatus))
	}
	if h.Payment != nil {
		add(Entity("payments", "/payments", h.Payment).
			GET("/byOrder", h.Payment.GetByOrder).
			POST("/:id/checkout", h.Payment.Checkout).
			GuardWrites(requireAuth))
	}
	if h.Chat != nil {
		add(Entity("chats", "/chats", h.Chat).
			GET("/byShop", h.Chat.GetByShop).
			GET("/byUser", h.Chat.GetByUser).
			GET("/byShopAndUser", h.Chat.GetByShopAndUser).
			GuardWrites(requireAuth))
	}
	if h.Auth != nil {
		add(NewDomainGroup("auth", "/auth").
			POST("/login", h.Auth.Login).
			POST("/logout", requireAuth, h.Auth.Logout))
	}
	if h.Recaptcha != nil {
		add(NewDomainGroup("recaptcha", "/recaptcha").
			POST("/verify", h.Recaptcha.Verify))
	}
	return groups
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(cfg.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = cfg.CORSAllowOrigins
	}
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	return cors
}

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/maderas/backend/internal/audit"
	auditdomain "github.com/maderas/backend/internal/audit/domain"
	"github.com/maderas/backend/internal/auth"
	authdomain "github.com/maderas/backend/internal/auth/domain"
	"github.com/maderas/backend/internal/authorization"
	"github.com/maderas/backend/internal/carrier"
	carrierdomain "github.com/maderas/backend/internal/carrier/domain"
	"github.com/maderas/backend/internal/client"
	clientdomain "github.com/maderas/backend/internal/client/domain"
	"github.com/maderas/backend/internal/config"
	"github.com/maderas/backend/internal/freight"
	freightdomain "github.com/maderas/backend/internal/freight/domain"
	"github.com/maderas/backend/internal/invoice"
	invoicedomain "github.com/maderas/backend/internal/invoice/domain"
	"github.com/maderas/backend/internal/observability"
	obslogger "github.com/maderas/backend/internal/observability/logger"
	obsmetrics "github.com/maderas/backend/internal/observability/metrics"
	obstracing "github.com/maderas/backend/internal/observability/tracing"
	"github.com/maderas/backend/internal/packing"
	packingdomain "github.com/maderas/backend/internal/packing/domain"
	"github.com/maderas/backend/internal/providers"
	"github.com/maderas/backend/internal/providers/pdf"
	"github.com/maderas/backend/internal/purchase"
	purchasedomain "github.com/maderas/backend/internal/purchase/domain"
	"github.com/maderas/backend/internal/ratelimit"
	"github.com/maderas/backend/internal/supplier"
	supplierdomain "github.com/maderas/backend/internal/supplier/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	authorization.Module,
	audit.Module,
	auth.Module,
	client.Module,
	supplier.Module,
	carrier.Module,
	purchase.Module,
	invoice.Module,
	freight.Module,
	packing.Module,
	providers.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(httpMetrics.GinMiddleware())
	r.Use(CORS(cfg.CORSAllowedOrigins))
	r.Use(RequestTimeout(cfg.HTTPRequestTimeout))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	log          *zap.Logger
	authsvc      authdomain.Service
	authzSvc     authorization.Service
	auditSvc     auditdomain.Service
	clientSvc    clientdomain.Service
	supplierSvc  supplierdomain.Service
	carrierSvc   carrierdomain.Service
	purchaseSvc  purchasedomain.Service
	invoiceSvc   invoicedomain.Service
	freightSvc   freightdomain.Service
	packingSvc   packingdomain.Service
	pdf          pdf.Provider
	loginLimiter *ratelimit.LoginLimiter
	obsMetrics   *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	Log          *zap.Logger
	Authsvc      authdomain.Service
	AuthzSvc     authorization.Service
	AuditSvc     auditdomain.Service
	ClientSvc    clientdomain.Service
	SupplierSvc  supplierdomain.Service
	CarrierSvc   carrierdomain.Service
	PurchaseSvc  purchasedomain.Service
	InvoiceSvc   invoicedomain.Service
	FreightSvc   freightdomain.Service
	PackingSvc   packingdomain.Service
	PDF          pdf.Provider
	LoginLimiter *ratelimit.LoginLimiter `optional:"true"`
	ObsMetrics   *obsmetrics.Metrics     `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		log:          p.Log.Named("http.server"),
		authsvc:      p.Authsvc,
		authzSvc:     p.AuthzSvc,
		auditSvc:     p.AuditSvc,
		clientSvc:    p.ClientSvc,
		supplierSvc:  p.SupplierSvc,
		carrierSvc:   p.CarrierSvc,
		purchaseSvc:  p.PurchaseSvc,
		invoiceSvc:   p.InvoiceSvc,
		freightSvc:   p.FreightSvc,
		packingSvc:   p.PackingSvc,
		pdf:          p.PDF,
		loginLimiter: p.LoginLimiter,
		obsMetrics:   p.ObsMetrics,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()
	svc.registerAdminRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	api := s.engine.Group("/api")

	api.POST("/register", s.OptionalAuth(), s.Register)
	api.POST("/login", s.Login)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Clientes --------
	api.GET("/clientes", s.ListClients)
	api.GET("/clientes/:id", s.GetClientByID)
	api.POST("/clientes", s.AuthRequired(), s.authorize(authorization.ObjectCliente, authorization.ActionCreate), s.CreateClient)
	api.PUT("/clientes/:id", s.AuthRequired(), s.authorize(authorization.ObjectCliente, authorization.ActionUpdate), s.UpdateClient)
	api.DELETE("/clientes/:id", s.AuthRequired(), s.authorize(authorization.ObjectCliente, authorization.ActionDelete), s.DeleteClient)

	// -------- Proveedores --------
	api.GET("/proveedores", s.ListSuppliers)
	api.GET("/proveedores/:id", s.GetSupplierByID)
	api.POST("/proveedores", s.AuthRequired(), s.authorize(authorization.ObjectProveedor, authorization.ActionCreate), s.CreateSupplier)
	api.PUT("/proveedores/:id", s.AuthRequired(), s.authorize(authorization.ObjectProveedor, authorization.ActionUpdate), s.UpdateSupplier)
	api.DELETE("/proveedores/:id", s.AuthRequired(), s.authorize(authorization.ObjectProveedor, authorization.ActionDelete), s.DeleteSupplier)

	// -------- Transportistas --------
	api.GET("/transportistas", s.ListCarriers)
	api.GET("/transportistas/:id", s.GetCarrierByID)
	api.POST("/transportistas", s.AuthRequired(), s.authorize(authorization.ObjectTransportista, authorization.ActionCreate), s.CreateCarrier)
	api.PUT("/transportistas/:id", s.AuthRequired(), s.authorize(authorization.ObjectTransportista, authorization.ActionUpdate), s.UpdateCarrier)
	api.DELETE("/transportistas/:id", s.AuthRequired(), s.authorize(authorization.ObjectTransportista, authorization.ActionDelete), s.DeleteCarrier)

	// -------- Compras --------
	api.GET("/compras", s.ListPurchases)
	api.GET("/compras/:id", s.GetPurchaseByID)
	api.GET("/compras/:id/gastos", s.ListPurchaseExpenses)
	api.POST("/compras", s.AuthRequired(), s.authorize(authorization.ObjectCompra, authorization.ActionCreate), s.CreatePurchase)
	api.POST("/compras/gastos", s.AuthRequired(), s.authorize(authorization.ObjectCompra, authorization.ActionUpdate), s.AddPurchaseExpense)
	api.PUT("/compras/:id", s.AuthRequired(), s.authorize(authorization.ObjectCompra, authorization.ActionUpdate), s.UpdatePurchase)
	api.DELETE("/compras/:id", s.AuthRequired(), s.authorize(authorization.ObjectCompra, authorization.ActionDelete), s.DeletePurchase)

	// -------- Facturas --------
	api.GET("/facturas", s.ListInvoices)
	api.GET("/facturas/:id", s.GetInvoiceByID)
	api.GET("/facturas/:id/items", s.ListInvoiceItems)
	api.GET("/facturas/:id/cobranzas", s.ListInvoiceCollections)
	api.GET("/facturas/:id/pdf", s.RenderInvoice)
	api.POST("/facturas", s.AuthRequired(), s.authorize(authorization.ObjectFactura, authorization.ActionCreate), s.CreateInvoice)
	api.PUT("/facturas/items/:itemId", s.AuthRequired(), s.authorize(authorization.ObjectFactura, authorization.ActionUpdate), s.UpdateInvoiceItem)
	api.DELETE("/facturas/items/:itemId", s.AuthRequired(), s.authorize(authorization.ObjectFactura, authorization.ActionUpdate), s.DeleteInvoiceItem)
	api.PUT("/facturas/:id", s.AuthRequired(), s.authorize(authorization.ObjectFactura, authorization.ActionUpdate), s.UpdateInvoice)
	api.DELETE("/facturas/:id", s.AuthRequired(), s.authorize(authorization.ObjectFactura, authorization.ActionDelete), s.DeleteInvoice)
	api.POST("/cobranzas", s.AuthRequired(), s.authorize(authorization.ObjectCobranza, authorization.ActionCreate), s.AddCollection)

	// -------- Fletes --------
	api.GET("/fletes", s.ListFreights)
	api.GET("/fletes/:id", s.GetFreightByID)
	api.POST("/fletes", s.AuthRequired(), s.authorize(authorization.ObjectFlete, authorization.ActionCreate), s.CreateFreight)
	api.PUT("/fletes/:id", s.AuthRequired(), s.authorize(authorization.ObjectFlete, authorization.ActionUpdate), s.UpdateFreight)
	api.DELETE("/fletes/:id", s.AuthRequired(), s.authorize(authorization.ObjectFlete, authorization.ActionDelete), s.DeleteFreight)

	// -------- Packing --------
	api.GET("/packing", s.ListPackings)
	api.GET("/packing/:id", s.GetPackingByID)
	api.GET("/packing/:id/items", s.ListPackingItems)
	api.GET("/packing/:id/pdf", s.RenderPacking)
	api.POST("/packing", s.AuthRequired(), s.authorize(authorization.ObjectPacking, authorization.ActionCreate), s.CreatePacking)
	api.PUT("/packing/items/:itemId", s.AuthRequired(), s.authorize(authorization.ObjectPacking, authorization.ActionUpdate), s.UpdatePackingItem)
	api.DELETE("/packing/items/:itemId", s.AuthRequired(), s.authorize(authorization.ObjectPacking, authorization.ActionUpdate), s.DeletePackingItem)
	api.PUT("/packing/:id", s.AuthRequired(), s.authorize(authorization.ObjectPacking, authorization.ActionUpdate), s.UpdatePacking)
	api.DELETE("/packing/:id", s.AuthRequired(), s.authorize(authorization.ObjectPacking, authorization.ActionDelete), s.DeletePacking)
}

func (s *Server) registerAdminRoutes() {
	api := s.engine.Group("/api")
	api.Use(s.AuthRequired())

	api.GET("/usuarios", s.authorize(authorization.ObjectUsuario, authorization.ActionView), s.ListUsers)
	api.GET("/usuarios/:id", s.authorize(authorization.ObjectUsuario, authorization.ActionView), s.GetUserByID)
	api.PUT("/usuarios/:id", s.authorize(authorization.ObjectUsuario, authorization.ActionUpdate), s.UpdateUser)
	api.DELETE("/usuarios/:id", s.authorize(authorization.ObjectUsuario, authorization.ActionDelete), s.DeleteUser)

	api.GET("/audit-logs", s.authorize(authorization.ObjectAuditLog, authorization.ActionView), s.ListAuditLogs)
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})
}

package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Domenick1991/tripflow/api"
	"github.com/Domenick1991/tripflow/config"
	"github.com/Domenick1991/tripflow/internal/catalog"
	"github.com/Domenick1991/tripflow/internal/service/auth"
	"github.com/Domenick1991/tripflow/internal/service/checkout"
	"github.com/Domenick1991/tripflow/internal/service/ledger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, catalogSvc catalog.CatalogUseCase, ledgerSvc ledger.LedgerUseCase, authSvc auth.AuthUseCase, checkoutSvc checkout.CheckoutUseCase) error {
	router := NewRouter(catalogSvc, ledgerSvc, authSvc, checkoutSvc)

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter assembles the full route table.
func NewRouter(catalogSvc catalog.CatalogUseCase, ledgerSvc ledger.LedgerUseCase, authSvc auth.AuthUseCase, checkoutSvc checkout.CheckoutUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	apiGroup := router.Group("/api")
	api.NewOfferHandler(catalogSvc).Register(apiGroup.Group("/offers"))
	api.NewAuthHandler(authSvc).Register(apiGroup.Group("/auth"))
	api.NewCheckoutHandler(checkoutSvc).Register(apiGroup.Group("/checkout"))

	bookings := apiGroup.Group("/bookings")
	bookings.Use(api.SessionRequired(authSvc))
	api.NewBookingHandler(ledgerSvc).Register(bookings)

	api.NewTicketHandler().Register(router)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

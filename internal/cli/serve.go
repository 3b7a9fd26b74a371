package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/swaglabs/storefront/internal/config"
	"github.com/swaglabs/storefront/internal/handlers"
	"github.com/swaglabs/storefront/internal/services"
)

// ServerDependencies holds all dependencies needed for the server
type ServerDependencies struct {
	OrderRepo           services.OrderRepository
	ServerConfig        config.ServerConfig
	Carts               *services.CartService
	RootHandler         http.Handler
	InventoryHandler    http.Handler
	CartHandler         http.Handler
	CartAddHandler      http.Handler
	CartRemoveHandler   http.Handler
	CheckoutInfoHandler http.Handler
	OverviewHandler     http.Handler
	CompleteHandler     http.Handler
}

// BuildServerDependencies creates the services and handlers of the storefront
// on top of an order repository
func BuildServerDependencies(cfg config.ServerConfig, orderRepo services.OrderRepository) (ServerDependencies, error) {
	deps := ServerDependencies{
		OrderRepo:    orderRepo,
		ServerConfig: cfg,
		Carts:        services.NewCartService(),
	}

	orderService := services.NewOrderService(orderRepo)

	deps.RootHandler = handlers.RootHandler()
	deps.CartAddHandler = handlers.NewCartActionHandler(deps.Carts, handlers.CartAdd)
	deps.CartRemoveHandler = handlers.NewCartActionHandler(deps.Carts, handlers.CartRemove)

	inventoryHandler, err := handlers.NewInventoryHandler(cfg.TemplatesDir, deps.Carts)
	if err != nil {
		return deps, fmt.Errorf("failed to create inventory handler: %w", err)
	}
	deps.InventoryHandler = inventoryHandler

	cartHandler, err := handlers.NewCartHandler(cfg.TemplatesDir, deps.Carts)
	if err != nil {
		return deps, fmt.Errorf("failed to create cart handler: %w", err)
	}
	deps.CartHandler = cartHandler

	checkoutInfoHandler, err := handlers.NewCheckoutInfoHandler(cfg.TemplatesDir, deps.Carts)
	if err != nil {
		return deps, fmt.Errorf("failed to create checkout information handler: %w", err)
	}
	deps.CheckoutInfoHandler = checkoutInfoHandler

	overviewHandler, err := handlers.NewOverviewHandler(cfg.TemplatesDir, deps.Carts, orderService)
	if err != nil {
		return deps, fmt.Errorf("failed to create overview handler: %w", err)
	}
	deps.OverviewHandler = overviewHandler

	completeHandler, err := handlers.NewCompleteHandler(cfg.TemplatesDir, orderService)
	if err != nil {
		return deps, fmt.Errorf("failed to create complete handler: %w", err)
	}
	deps.CompleteHandler = completeHandler

	return deps, nil
}

// NewRouter maps the storefront routes onto the handlers in deps
func NewRouter(deps ServerDependencies) *http.ServeMux {
	staticDir := deps.ServerConfig.StaticDir
	if staticDir == "" {
		staticDir = "static"
	}

	mux := http.NewServeMux()
	mux.Handle("/", deps.RootHandler)
	mux.Handle("/inventory.html", deps.InventoryHandler)
	mux.Handle("/cart.html", deps.CartHandler)
	mux.Handle("/cart/add", deps.CartAddHandler)
	mux.Handle("/cart/remove", deps.CartRemoveHandler)
	mux.Handle("/checkout-step-one.html", deps.CheckoutInfoHandler)
	mux.Handle("/checkout-step-two.html", deps.OverviewHandler)
	mux.Handle("/checkout-complete.html", deps.CompleteHandler)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	return mux
}

// RunServe starts the storefront web server
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil)
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	mux := NewRouter(deps)

	// Create listener
	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	// Create HTTP server
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Server listening on %s", listener.Addr().String())
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Server error")
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server
// If shutdown channel is nil, a new channel will be created and registered with signal.Notify
func WaitForShutdown(server *http.Server, shutdown chan os.Signal) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration) error {
	// Channel to listen for interrupt or terminate signals
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(shutdown)
	}

	sig := <-shutdown
	logrus.Infof("Received signal: %v, shutting down server...", sig)

	// Give outstanding requests time to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		// http.Server.Close does not report listener close errors, so this
		// only fails when the server is in an unusable state.
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	logrus.Info("Server stopped")
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"hub_balance/internal/app/service"
	"hub_balance/internal/infrastructure/accountstore"
	"hub_balance/internal/infrastructure/configloader"
	"hub_balance/internal/infrastructure/network"
	clientprovider "hub_balance/internal/infrastructure/network/client"
	networkdefinition "hub_balance/internal/infrastructure/network/definition"
	"hub_balance/internal/infrastructure/restapi"
	"hub_balance/internal/infrastructure/walletloader"
	"hub_balance/internal/pkg/logger"
	"hub_balance/internal/pkg/metrics"
)

const (
	connectTimeout  = 2 * time.Minute
	shutdownTimeout = 10 * time.Second
	swaggerFile     = "docs/swagger.yaml"
)

func main() {
	cfgPath := configloader.Path()
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logs, err := logger.NewFactory(cfg.Logging.Level, cfg.Logging.Loggers, cfg.Logging.Development)
	if err != nil {
		logrus.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logs.Sync()
	slog.SetDefault(logs.Slog(""))

	log := logs.Named("Main")
	log.Info("hub_balance starting", zap.String("config", cfgPath), zap.String("network", cfg.Network.Relay))

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.MustRegisterMetrics()

	definitions := networkdefinition.NewNetworkDefinitionProvider(logs.Port("Definitions"), cfg.Selection())
	clients := clientprovider.NewGatewayClientProvider(cfg.RpcClient, logs.Named(""), m)
	connector := network.NewConnector(
		definitions,
		clients,
		service.NewComposer(logs.Port("Composer")),
		cfg.RpcClient.MaxConcurrentDials,
		logs.Named(""),
		m,
	)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	err = connector.Connect(ctx)
	cancel()
	if err != nil {
		log.Fatal("Failed to connect to the network", zap.Error(err))
	}
	log.Info("Network connected", zap.Strings("chains", chainNames(connector)))

	aggregator := service.NewAccountAggregator(connector, logs.Port("Aggregator"), m)
	accounts := accountstore.NewCacheStore(cfg.Accounts.TTL(), cfg.Accounts.CleanupInterval())

	if cfg.Accounts.WalletFile != "" {
		wallets := walletloader.NewWalletFileLoader(cfg.Accounts.WalletFile, logs.Port("WalletLoader"))
		account, err := wallets.GetAccount()
		switch {
		case err != nil:
			log.Warn("Failed to load wallet file", zap.String("file", cfg.Accounts.WalletFile), zap.Error(err))
		case account.Len() == 0:
			log.Warn("Wallet file has no addresses", zap.String("file", cfg.Accounts.WalletFile))
		default:
			accounts.Save(account)
			log.Info("Default account loaded", zap.String("id", account.ID), zap.Int("addresses", account.Len()))
		}
	}

	handler := restapi.NewHandler(connector, aggregator, accounts, logs.Named(""))
	router := restapi.SetupRouter(handler, logs.Named(""), restapi.RouterOptions{
		RequestTimeout: cfg.Server.RequestTimeout(),
		Swagger:        cfg.Server.Swagger,
		SwaggerFile:    swaggerFile,
	})

	srv := &http.Server{
		Addr:         listenAddr(cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info(fmt.Sprintf("Server starting on %s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	connector.Disconnect()

	log.Info("Server exiting")
}

// listenAddr accepts "8080", ":8080" or "host:8080".
func listenAddr(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

func chainNames(c *network.Connector) []string {
	ids := c.Chains()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

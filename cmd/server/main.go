package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/api"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/chain"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/config"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/database"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/pricing"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/repository"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/service"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/snapshot"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	// Open database connection and run migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	log.WithField("path", cfg.Database.Path).Info("connected to database")

	// Create repositories
	investorRepo := repository.NewInvestorRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	performanceRepo := repository.NewPerformanceRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	settingsService, err := service.NewSettingsService(settingRepo, cfg.Providers.FernetKey, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize settings service")
	}

	coinGecko := pricing.NewCoinGeckoClient(cfg.Providers.CoinGeckoURL, cfg.Providers.CoinGeckoAPIKey)
	if cfg.Providers.CoinGeckoAPIKey != "" {
		if err := settingsService.SetSecret(service.SettingCoinGeckoAPIKey, cfg.Providers.CoinGeckoAPIKey); err != nil {
			log.WithError(err).Warn("failed to persist CoinGecko API key")
		}
	} else if stored, err := settingsService.GetSecret(service.SettingCoinGeckoAPIKey); err == nil {
		coinGecko.SetAPIKey(stored)
	} else if !errors.Is(err, apperrors.ErrSettingNotFound) {
		log.WithError(err).Warn("failed to load stored CoinGecko API key")
	}

	priceChain := pricing.NewChain(log,
		coinGecko,
		pricing.NewStaticSource(pricing.DefaultFallbackPrices),
	)

	providers := chain.NewRegistry(
		chain.NewSolanaProvider(cfg.Providers.SolanaRPCURL, log),
		chain.NewEthereumProvider(cfg.Providers.EthereumRPCURL, cfg.Providers.EthplorerURL, cfg.Providers.EthplorerAPIKey, log),
		chain.NewHyperliquidProvider(cfg.Providers.HyperliquidURL, log),
	)

	snapshots := snapshot.NewStore()

	investorService := service.NewInvestorService(investorRepo)
	ledgerService := service.NewLedgerService(transactionRepo, investorRepo)
	valuationService := service.NewValuationService(investorRepo, transactionRepo, snapshots)
	assetService := service.NewAssetService(assetRepo)
	performanceService := service.NewPerformanceService(performanceRepo)
	refreshService := service.NewRefreshService(
		assetRepo,
		providers,
		priceChain,
		snapshots,
		performanceService,
		cfg.Wallets,
		cfg.Refresh.CallTimeout,
		log,
	)

	// Build the first snapshot before accepting traffic so early reads do
	// not see an empty portfolio.
	if _, err := refreshService.Refresh(context.Background()); err != nil {
		log.WithError(err).Warn("initial portfolio refresh failed")
	}

	// Scheduled refresh
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Refresh.Schedule, func() {
		if _, err := refreshService.Refresh(context.Background()); err != nil {
			log.WithError(err).Error("scheduled portfolio refresh failed")
		}
	}); err != nil {
		log.WithError(err).Fatalf("invalid refresh schedule %q", cfg.Refresh.Schedule)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Investor:    investorService,
		Ledger:      ledgerService,
		Valuation:   valuationService,
		Asset:       assetService,
		Performance: performanceService,
		Refresh:     refreshService,
		Snapshots:   snapshots,
	}, cfg, log)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exited")
}

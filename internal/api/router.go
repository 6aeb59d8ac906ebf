package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/api/handlers"
	custommiddleware "github.com/WAGMIFund01/crypto-investment-manager/internal/api/middleware"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/config"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/service"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/snapshot"
)

// Services bundles the service dependencies the router hands to handlers.
type Services struct {
	System      *service.SystemService
	Investor    *service.InvestorService
	Ledger      *service.LedgerService
	Valuation   *service.ValuationService
	Asset       *service.AssetService
	Performance *service.PerformanceService
	Refresh     *service.RefreshService
	Snapshots   *snapshot.Store
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config, log *logrus.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/investors", func(r chi.Router) {
			investorHandler := handlers.NewInvestorHandler(svc.Investor, svc.Valuation, svc.Ledger)
			r.Get("/", investorHandler.Investors)
			r.Post("/", investorHandler.CreateInvestor)
			r.Get("/code/{code}", investorHandler.GetInvestorOnCode)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", investorHandler.GetInvestor)
				r.Delete("/", investorHandler.DeleteInvestor)
				r.Get("/transactions", investorHandler.InvestorTransactions)
			})
		})

		r.Route("/transactions", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svc.Ledger)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Get("/recent", transactionHandler.RecentTransactions)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(svc.Snapshots, svc.Asset, svc.Refresh)
			r.Get("/", portfolioHandler.Portfolio)
			r.Post("/refresh", portfolioHandler.Refresh)
			r.Route("/assets", func(r chi.Router) {
				r.Post("/", portfolioHandler.CreateAsset)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Put("/", portfolioHandler.UpdateAsset)
					r.Delete("/", portfolioHandler.DeleteAsset)
				})
			})
		})

		r.Route("/fund", func(r chi.Router) {
			fundHandler := handlers.NewFundHandler(svc.Valuation)
			r.Get("/summary", fundHandler.Summary)
			r.Get("/risk", fundHandler.Risk)
		})

		r.Route("/performance", func(r chi.Router) {
			performanceHandler := handlers.NewPerformanceHandler(svc.Performance)
			r.Get("/", performanceHandler.Samples)
			r.Get("/monthly", performanceHandler.Monthly)
		})
	})

	return r
}

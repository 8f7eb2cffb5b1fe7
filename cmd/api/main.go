package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/fkhayef/treasury/docs"
	"github.com/fkhayef/treasury/internal/conditional"
	"github.com/fkhayef/treasury/internal/config"
	"github.com/fkhayef/treasury/internal/crosschain"
	"github.com/fkhayef/treasury/internal/database"
	"github.com/fkhayef/treasury/internal/department"
	"github.com/fkhayef/treasury/internal/ledger"
	"github.com/fkhayef/treasury/internal/payment"
	"github.com/fkhayef/treasury/internal/supplier"
	"github.com/fkhayef/treasury/internal/yield"
	mw "github.com/fkhayef/treasury/pkg/middleware"
)

// Destination domains the cross-chain adapter accepts. CCTP-style
// numbering; 0 is the home domain and is rejected.
var supportedDomains = []uint32{1, 2, 3, 6, 7}

// @title           Treasury Payments API
// @version         1.0
// @description     Payment scheduling and multi-party approval engine for a corporate treasury.
// @BasePath        /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	var (
		ledgerStore      ledger.Storage
		supplierStore    supplier.Storage
		paymentStore     payment.Storage
		departmentStore  department.Storage
		crosschainStore  crosschain.Storage
		conditionalStore conditional.Storage
		yieldStore       yield.Storage
	)

	if cfg.Storage == "memory" {
		log.Println("Using in-memory storage")
		ledgerStore = ledger.NewMemoryStorage()
		supplierStore = supplier.NewMemoryStorage()
		paymentStore = payment.NewMemoryStorage()
		departmentStore = department.NewMemoryStorage()
		crosschainStore = crosschain.NewMemoryStorage()
		conditionalStore = conditional.NewMemoryStorage()
		yieldStore = yield.NewMemoryStorage()
	} else {
		db, err := database.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		log.Println("Connected to database successfully")

		ledgerStore = ledger.NewPostgresStorage(db)
		supplierStore = supplier.NewPostgresStorage(db)
		paymentStore = payment.NewPostgresStorage(db)
		departmentStore = department.NewPostgresStorage(db)
		crosschainStore = crosschain.NewPostgresStorage(db)
		conditionalStore = conditional.NewPostgresStorage(db)
		yieldStore = yield.NewPostgresStorage(db)
	}

	// Ledger feature
	ledgerService := ledger.NewService(ledgerStore)
	ledgerHandler := ledger.NewHandler(ledgerService)

	// Supplier feature
	supplierService := supplier.NewService(supplierStore)
	supplierHandler := supplier.NewHandler(supplierService)

	// Payment feature (approval engine included)
	paymentService := payment.NewService(paymentStore, ledgerService, supplierService)
	paymentHandler := payment.NewHandler(paymentService)

	if err := paymentService.Bootstrap(context.Background(), &payment.Config{
		Approvers:         cfg.Approvers,
		RequiredApprovals: cfg.RequiredApprovals,
		ApprovalThreshold: cfg.ApprovalThreshold,
		TimelockSeconds:   cfg.TimelockSeconds,
	}); err != nil {
		log.Fatalf("Failed to bootstrap approval config: %v", err)
	}

	// Department feature (budget ceilings over the payment scheduler)
	departmentService := department.NewService(departmentStore, paymentService)
	departmentHandler := department.NewHandler(departmentService)

	// Cross-chain feature
	crosschainService := crosschain.NewService(crosschainStore, paymentService, ledgerService, crosschain.NewLoopbackNetwork(), supportedDomains)
	crosschainHandler := crosschain.NewHandler(crosschainService)

	// Conditional payment feature
	conditionalService := conditional.NewService(conditionalStore, ledgerService, conditional.AcceptAllVerifier{})
	conditionalHandler := conditional.NewHandler(conditionalService)

	// Yield feature (simulated venue pays 5% of principal per harvest)
	yieldService := yield.NewService(yieldStore, ledgerService, yield.NewSimulatedStrategy(500))
	yieldHandler := yield.NewHandler(yieldService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(mw.CallerMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Mount feature routers
		r.Mount("/ledger", ledgerHandler.Routes())
		r.Mount("/suppliers", supplierHandler.Routes())
		r.Mount("/payments", paymentHandler.Routes())
		r.Mount("/approvers", paymentHandler.ConfigRoutes())
		r.Mount("/departments", departmentHandler.Routes())
		r.Mount("/crosschain", crosschainHandler.Routes())
		r.Mount("/conditional", conditionalHandler.Routes())
		r.Mount("/yield", yieldHandler.Routes())
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

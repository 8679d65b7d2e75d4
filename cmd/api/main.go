package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cloudguides/leadcapture/internal/config"
	"github.com/cloudguides/leadcapture/internal/infra/database"
	"github.com/cloudguides/leadcapture/internal/infra/http/handlers"
	"github.com/cloudguides/leadcapture/internal/infra/http/middleware"
	"github.com/cloudguides/leadcapture/internal/infra/integration/mailerlite"
	"github.com/cloudguides/leadcapture/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	groups, err := config.LoadGroups(cfg.GroupsFile)
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal(err)
	}

	// 1. Repositories
	submissionRepo := database.NewSubmissionRepository(db)
	contactRepo := database.NewContactRepository(db)
	leadRepo := database.NewLeadRepository(db)
	productRepo := database.NewStripeProductRepository(db)

	// 2. Integrations
	mlClient, err := mailerlite.NewClient(cfg.MailerLiteToken, cfg.MailerLiteURL)
	if err != nil {
		log.Fatal(err)
	}

	// 3. UseCases
	submitUC := usecase.NewSubmitEmailUseCase(submissionRepo, mlClient, groups)
	newsletterUC := usecase.NewSubscribeNewsletterUseCase(mlClient, groups)

	// 4. Handlers
	submissionHandler := handlers.NewSubmissionHandler(submitUC, cfg.RateLimitPerMin)
	newsletterHandler := handlers.NewNewsletterHandler(newsletterUC)
	contactHandler := handlers.NewContactHandler(contactRepo, leadRepo)
	leadHandler := handlers.NewLeadHandler(leadRepo)
	productHandler := handlers.NewProductHandler(productRepo)
	healthHandler := handlers.NewHealthHandler(db, cfg.MailerLiteToken != "")

	// 5. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Post("/email/submit", submissionHandler.Handle)
	r.Post("/newsletter/subscribe", newsletterHandler.HandleSubscribe)
	r.Get("/newsletter/status", newsletterHandler.HandleStatus)

	r.Get("/healthz", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.AdminAuth(cfg.AdminAPIToken))

		r.Get("/contacts", contactHandler.HandleList)
		r.Post("/contacts", contactHandler.HandleCreate)
		r.Get("/contacts/{id}", contactHandler.HandleShow)
		r.Put("/contacts/{id}", contactHandler.HandleUpdate)
		r.Delete("/contacts/{id}", contactHandler.HandleDelete)
		r.Post("/contacts/{id}/attach-leads", contactHandler.HandleAttachLeads)
		r.Post("/contacts/{id}/detach-leads", contactHandler.HandleDetachLeads)
		r.Post("/contacts/{id}/sync-leads", contactHandler.HandleSyncLeads)

		r.Get("/leads", leadHandler.HandleList)
		r.Post("/leads", leadHandler.HandleCreate)

		r.Get("/products", productHandler.HandleList)
		r.Post("/products", productHandler.HandleCreate)
		r.Get("/products/{id}", productHandler.HandleShow)
		r.Put("/products/{id}", productHandler.HandleUpdate)
		r.Delete("/products/{id}", productHandler.HandleDelete)
	})

	addr := ":" + cfg.Port
	log.Printf("🔥 Lead capture API listening on %s", addr)
	http.ListenAndServe(addr, r)
}

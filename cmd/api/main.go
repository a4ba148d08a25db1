package main

import (
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/infra/mail"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
		os.Getenv("RABBITMQ_HOST"), os.Getenv("RABBITMQ_PORT"),
	)
	if err != nil {
		logrus.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	taxonomyRepo := database.NewTaxonomyRepository(db)
	interactionRepo := database.NewInteractionRepository(db)
	campaignRepo := database.NewCampaignRepository(db)
	taskRepo := database.NewTaskRepository(db)

	// 2. Adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if mailPort == 0 {
		mailPort = 587
	}
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		os.Getenv("MAIL_FROM"),
	)

	// 3. Serviços do core
	registry := usecase.NewLeadRegistry(leadRepo, interactionRepo, producer)
	taxonomy := usecase.NewTaxonomyStore(taxonomyRepo)
	interactions := usecase.NewInteractionLog(interactionRepo, leadRepo)
	engine := usecase.NewQueryEngine(leadRepo, taxonomyRepo, interactionRepo)
	campaigns := usecase.NewCampaignService(campaignRepo, taskRepo, leadRepo, engine, mailSender)

	features := usecase.AllFeatures()
	if os.Getenv("FEATURE_CAMPAIGNS") == "false" {
		features.Campaigns = false
	}
	if os.Getenv("FEATURE_TASKS") == "false" {
		features.Tasks = false
	}

	facade := usecase.NewCRMFacade(registry, taxonomy, interactions, engine, campaigns, features)

	// 4. Handlers
	leadHandler := handlers.NewLeadHandler(facade)
	captureHandler := handlers.NewCaptureHandler(facade)
	sectorHandler := handlers.NewTaxonomyHandler(facade, entity.KindSector)
	segmentHandler := handlers.NewTaxonomyHandler(facade, entity.KindSegment)
	tagHandler := handlers.NewTaxonomyHandler(facade, entity.KindTag)
	campaignHandler := handlers.NewCampaignHandler(facade)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 5. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/capture", captureHandler.CaptureLead)

	r.Route("/leads", func(r chi.Router) {
		r.Post("/", leadHandler.Create)
		r.Get("/", leadHandler.List)
		r.Get("/stats", leadHandler.Stats)
		r.Get("/{id}", leadHandler.Get)
		r.Patch("/{id}", leadHandler.Update)
		r.Delete("/{id}", leadHandler.Delete)
		r.Post("/{id}/status", leadHandler.ChangeStatus)
		r.Post("/{id}/interactions", leadHandler.RecordInteraction)
		r.Get("/{id}/interactions", leadHandler.ListInteractions)
		r.Delete("/{id}/interactions/{interactionId}", leadHandler.DeleteInteraction)
		r.Get("/{id}/tasks", campaignHandler.ListTasks)
	})

	for prefix, h := range map[string]*handlers.TaxonomyHandler{
		"/sectors":  sectorHandler,
		"/segments": segmentHandler,
		"/tags":     tagHandler,
	} {
		r.Route(prefix, func(r chi.Router) {
			r.Post("/", h.Create)
			r.Get("/", h.List)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	}

	r.Route("/campaigns", func(r chi.Router) {
		r.Post("/", campaignHandler.Create)
		r.Get("/", campaignHandler.List)
		r.Get("/{id}", campaignHandler.Get)
		r.Get("/{id}/members", campaignHandler.Members)
		r.Post("/{id}/lock", campaignHandler.Lock)
		r.Put("/{id}/leads/{leadId}", campaignHandler.AssignLead)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", campaignHandler.AssignTask)
		r.Post("/{id}/complete", campaignHandler.CompleteTask)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logrus.Infof("CRM API listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logrus.Fatal(err)
	}
}

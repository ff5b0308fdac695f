package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/hudlab/hudlab-ops/internal/config"
	"github.com/hudlab/hudlab-ops/internal/entity"
	"github.com/hudlab/hudlab-ops/internal/infra/cache"
	"github.com/hudlab/hudlab-ops/internal/infra/database"
	"github.com/hudlab/hudlab-ops/internal/infra/http/handlers"
	"github.com/hudlab/hudlab-ops/internal/infra/http/middleware"
	"github.com/hudlab/hudlab-ops/internal/infra/integration/activecampaign"
	"github.com/hudlab/hudlab-ops/internal/infra/integration/nuvemshop"
	"github.com/hudlab/hudlab-ops/internal/infra/mail"
	"github.com/hudlab/hudlab-ops/internal/infra/queue"
	"github.com/hudlab/hudlab-ops/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuração inválida: %v", err)
	}

	if err := database.RunMigrations(cfg.Migrations, cfg.DatabaseURL); err != nil {
		log.Fatalf("❌ Migrations falharam: %v", err)
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Banco indisponível: %v", err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitUser, cfg.RabbitPass, cfg.RabbitHost, cfg.RabbitPort)
	if err != nil {
		log.Fatalf("❌ RabbitMQ indisponível: %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	dealRepo := database.NewDealRepository(db)
	syncLogRepo := database.NewSyncLogRepository(db)
	webhookLogRepo := database.NewWebhookLogRepository(db)
	orderRepo := database.NewOrderRepository(db)
	couponRepo := database.NewCouponRepository(db)
	profileRepo := database.NewUserProfileRepository(db)
	commissionRepo := database.NewCommissionRepository(db)
	pixKeyRepo := database.NewPixKeyRepository(db)
	contractRepo := database.NewContractRepository(db)
	affiliateRepo := database.NewAffiliateRepository(db)
	notificationRepo := database.NewNotificationRepository(db)

	// 2. Gateways e adapters
	acClient := activecampaign.NewClient(cfg.ACBaseURL, cfg.ACToken)
	nsClient := nuvemshop.NewClient(cfg.NSBaseURL, cfg.NSStoreID, cfg.NSToken)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	var mailSender queue.MailSender
	if cfg.MailHost != "" {
		mailSender = mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
	}

	// 3. Worker (consome a fila e faz o fan-out de notificações)
	worker := queue.NewWorker(rabbitMQ.Ch, notificationRepo, profileRepo, mailSender)
	go worker.Start(queue.QueueName)

	// 4. UseCases
	syncUC := usecase.NewSyncDealsUseCase(
		acClient, dealRepo, syncLogRepo, producer,
		cfg.SyncConcurrency, cfg.SyncRPS, cfg.SyncWindowDays,
	)
	crmWebhookUC := usecase.NewProcessCRMWebhookUseCase(acClient, dealRepo)
	storeWebhookUC := usecase.NewStoreWebhookUseCase(nsClient, webhookLogRepo, orderRepo)
	couponUC := usecase.NewGenerateCouponUseCase(couponRepo, nsClient, producer)

	// 5. Handlers
	store := cache.New()
	dealHandler := handlers.NewDealHandler(dealRepo, acClient, store)
	syncHandler := handlers.NewSyncHandler(syncUC, syncLogRepo, store)
	crmWebhookHandler := handlers.NewCRMWebhookHandler(crmWebhookUC, cfg.ACWebhookSecret)
	storeWebhookHandler := handlers.NewStoreWebhookHandler(storeWebhookUC, webhookLogRepo, cfg.NSWebhookSecret)
	retryHandler := handlers.NewRetryHandler(storeWebhookUC)
	couponHandler := handlers.NewCouponHandler(couponUC, couponRepo)
	commissionHandler := handlers.NewCommissionHandler(commissionRepo)
	pixKeyHandler := handlers.NewPixKeyHandler(pixKeyRepo)
	contractHandler := handlers.NewContractHandler(contractRepo)
	affiliateHandler := handlers.NewAffiliateHandler(affiliateRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	adminHandler := handlers.NewAdminHandler(profileRepo, producer)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, cfg)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "https://app.hudlab.com.br"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.Metrics)

	// Rotas públicas (webhooks validam segredo próprio)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/webhooks/activecampaign", crmWebhookHandler.Handle)
	r.Post("/webhooks/nuvemshop", storeWebhookHandler.Handle)

	// Rotas autenticadas (sessão Supabase + perfil aprovado)
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticator(cfg.SupabaseJWTSecret, profileRepo))

		// Dashboard de deals
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(entity.RoleOwner, entity.RoleAdmin, entity.RoleManager))
			r.Get("/deals", dealHandler.HandleList)
			r.Get("/deals/stats", dealHandler.HandleStats)
			r.Get("/deals/stages", dealHandler.HandleStages)
			r.Get("/sync/status", syncHandler.HandleStatus)
		})

		// Operação: sync e retry de webhooks
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(entity.RoleOwner, entity.RoleAdmin))
			r.Post("/sync/trigger", syncHandler.HandleTrigger)
			r.Get("/webhooks/logs", storeWebhookHandler.HandleListLogs)
			r.Post("/webhooks/retry", retryHandler.HandleSingle)
			r.Post("/webhooks/retry-batch", retryHandler.HandleBatch)
		})

		// Parcerias: leitura inclui partners-media (escopado por marca)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(
				entity.RoleOwner, entity.RoleAdmin, entity.RoleManager, entity.RolePartnersMedia,
			))
			r.Get("/partners/coupons", couponHandler.HandleList)
			r.Post("/partners/coupons/generate", couponHandler.HandleGenerate)
			r.Get("/partners/commissions", commissionHandler.HandleList)
			r.Get("/partners/pix-keys", pixKeyHandler.HandleList)
			r.Get("/partners/contracts", contractHandler.HandleList)
			r.Get("/partners/affiliate-links", affiliateHandler.HandleList)
		})

		// Escrita de registros de parceria
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(entity.RoleOwner, entity.RoleAdmin, entity.RoleManager))
			r.Post("/partners/commissions", commissionHandler.HandleCreate)
			r.Put("/partners/commissions/{id}", commissionHandler.HandleUpdate)
			r.Delete("/partners/commissions/{id}", commissionHandler.HandleDelete)
			r.Post("/partners/pix-keys", pixKeyHandler.HandleCreate)
			r.Put("/partners/pix-keys/{id}", pixKeyHandler.HandleUpdate)
			r.Delete("/partners/pix-keys/{id}", pixKeyHandler.HandleDelete)
			r.Post("/partners/contracts", contractHandler.HandleCreate)
			r.Put("/partners/contracts/{id}", contractHandler.HandleUpdate)
			r.Delete("/partners/contracts/{id}", contractHandler.HandleDelete)
			r.Post("/partners/affiliate-links", affiliateHandler.HandleCreate)
			r.Delete("/partners/affiliate-links/{id}", affiliateHandler.HandleDelete)
		})

		// Sininho: qualquer perfil aprovado
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole())
			r.Get("/notifications", notificationHandler.HandleList)
			r.Post("/notifications/{id}/read", notificationHandler.HandleMarkRead)
		})

		// Administração de perfis e broadcast: só owner
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(entity.RoleOwner))
			r.Get("/admin/users", adminHandler.HandleListUsers)
			r.Post("/admin/users/{id}/approve", adminHandler.HandleApprove)
			r.Post("/admin/users/{id}/role", adminHandler.HandleSetRole)
			r.Post("/admin/notifications", adminHandler.HandleBroadcast)
		})
	})

	addr := ":" + cfg.Port
	log.Infof("🔥 HudLab Ops rodando na porta %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/ligue-csr/internal/config"
	"github.com/xavierca1/ligue-csr/internal/infra/cache"
	"github.com/xavierca1/ligue-csr/internal/infra/database"
	"github.com/xavierca1/ligue-csr/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-csr/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-csr/internal/infra/mail"
	"github.com/xavierca1/ligue-csr/internal/infra/queue"
	"github.com/xavierca1/ligue-csr/internal/infra/worker"
	"github.com/xavierca1/ligue-csr/internal/logger"
	"github.com/xavierca1/ligue-csr/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewStructured("info", "console").Error("failed to load config", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Postgres
	db, err := database.NewDBConnection(cfg.Database.URL, cfg.Database.MaxConnections, cfg.Database.MaxIdle)
	if err != nil {
		log.Error("database unavailable", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Error("schema migration failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	leadRepo := database.NewLeadRepository(db)

	// 2. Redis (optional)
	var redisClient *redis.Client
	var snapshotCache usecase.SnapshotCache = cache.NopSnapshotCache{}
	var deduper worker.Deduper = cache.NopDeduper{}
	if cfg.Redis.Enabled() {
		redisClient = cache.NewRedisClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		defer redisClient.Close()
		snapshotCache = cache.NewSnapshotCache(redisClient, cfg.Redis.TTL())
		deduper = cache.NewReminderDeduper(redisClient, 24*time.Hour)
	} else {
		log.Warn("redis not configured, snapshot cache and reminder dedupe disabled", nil)
	}

	// 3. RabbitMQ (optional)
	var rabbitConn *amqp.Connection
	var publisher usecase.LeadEventPublisher
	var producer *queue.RabbitMQProducer
	if cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.URL)
		if err != nil {
			log.Error("rabbitmq unavailable", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		rabbitConn = rabbitMQ.Conn
		producer = queue.NewProducer(rabbitMQ.Ch)
		publisher = producer
	}

	// 4. Use cases
	snapshot := usecase.NewSnapshotLoader(leadRepo, snapshotCache, log)
	createUC := usecase.NewCreateLeadUseCase(leadRepo, snapshot, publisher, log)
	getUC := usecase.NewGetLeadUseCase(snapshot)
	listUC := usecase.NewListLeadsUseCase(snapshot)
	statusUC := usecase.NewUpdateLeadStatusUseCase(leadRepo, snapshot, log)
	notesUC := usecase.NewUpdateLeadNotesUseCase(leadRepo, snapshot, log)
	completeUC := usecase.NewMarkFollowUpCompleteUseCase(leadRepo, snapshot, publisher, log)
	deleteUC := usecase.NewDeleteLeadUseCase(leadRepo, snapshot, log)
	dashboardUC := usecase.NewDashboardUseCase(snapshot)
	reportUC := usecase.NewMonthlyReportUseCase(snapshot)

	// 5. Workers
	if cfg.RemindersActive() {
		reminders := worker.NewFollowUpReminderWorker(dashboardUC, producer, deduper, log.WithFields(map[string]interface{}{"component": "reminders"}), cfg.Reminders.TickInterval())
		go reminders.Start(ctx)

		if cfg.SMTP.Host != "" {
			consumeCh, err := rabbitConn.Channel()
			if err != nil {
				log.Error("failed to open consumer channel", map[string]interface{}{"error": err.Error()})
				os.Exit(1)
			}
			defer consumeCh.Close()

			sender := mail.NewEmailSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
			notifier := mail.NewReminderNotifier(sender, log)
			consumer := queue.NewWorker(consumeCh, notifier, log.WithFields(map[string]interface{}{"component": "reminder-consumer"}))
			go func() {
				if err := consumer.Start(ctx, queue.ReminderQueue); err != nil {
					log.Error("reminder consumer stopped", map[string]interface{}{"error": err.Error()})
				}
			}()
		} else {
			log.Warn("smtp not configured, reminders are queued but not emailed", nil)
		}
	} else if cfg.Reminders.Enabled {
		log.Warn("rabbitmq not configured, reminder worker disabled", nil)
	}

	// 6. Handlers
	leadHandler := handlers.NewLeadHandler(createUC, getUC, listUC, statusUC, notesUC, completeUC, deleteUC, cfg.HTTP.CreateRateLimit)
	go leadHandler.RunLimiter(ctx)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUC)
	reportHandler := handlers.NewReportHandler(reportUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn, redisClient, cfg.SMTP.Host)

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(log.WithFields(map[string]interface{}{"component": "http"})))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-User-ID", "X-User-Email"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/leads", func(r chi.Router) {
		r.Post("/", leadHandler.Create)
		r.Get("/", leadHandler.List)
		r.Get("/export.csv", leadHandler.ExportCSV)
		r.Get("/{id}", leadHandler.Get)
		r.Patch("/{id}/status", leadHandler.UpdateStatus)
		r.Patch("/{id}/notes", leadHandler.UpdateNotes)
		r.Post("/{id}/follow-ups/{index}/complete", leadHandler.CompleteFollowUp)
		r.Delete("/{id}", leadHandler.Delete)
	})

	r.Get("/dashboard", dashboardHandler.Get)
	r.Get("/dashboard/pending", dashboardHandler.Pending)

	r.Get("/reports/monthly", reportHandler.Monthly)
	r.Get("/reports/monthly.csv", reportHandler.MonthlyCSV)
	r.Get("/reports/monthly.txt", reportHandler.MonthlyText)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("csr service listening", map[string]interface{}{"addr": cfg.Addr(), "env": cfg.App.Environment})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", map[string]interface{}{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	log.Info("csr service stopped", nil)
}


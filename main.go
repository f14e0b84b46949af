package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	_ "github.com/lib/pq"
	"github.com/streadway/amqp"

	"github.com/muhammadolammi/careerworker/internal/assessment"
	"github.com/muhammadolammi/careerworker/internal/config"
	"github.com/muhammadolammi/careerworker/internal/database"
	"github.com/muhammadolammi/careerworker/internal/httpapi"
	"github.com/muhammadolammi/careerworker/internal/insights"
	"github.com/muhammadolammi/careerworker/internal/llm"
	"github.com/muhammadolammi/careerworker/internal/resume"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := cfg.Logger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBURL)
	if err != nil {
		logger.Error("error opening db", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	dbqueries := database.New(db)

	// Without an API key insights come from the static fallback and the
	// AI-only jobs fail fast.
	var gen llm.Generator
	var improver Improver
	if cfg.GoogleAPIKey != "" {
		gemini, err := llm.NewGemini(ctx, cfg.GoogleAPIKey, llm.NewModelSelector(cfg.GeminiModels), logger)
		if err != nil {
			logger.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
		gen = gemini

		agentImprover, err := NewAgentImprover(ctx, cfg.GoogleAPIKey, cfg.AgentModel)
		if err != nil {
			logger.Error("failed to create agent", "error", err)
			os.Exit(1)
		}
		improver = agentImprover
	} else {
		logger.Warn("GOOGLE_API_KEY not set, using fallback insights")
	}

	workerConfig := WorkerConfig{
		DB:          dbqueries,
		Insights:    insights.NewService(gen, logger),
		Assessments: assessment.NewService(gen, logger),
		Improver:    improver,
		RABBITMQUrl: cfg.RabbitMQURL,
		Logger:      logger,
	}

	if cfg.R2.Enabled() {
		awsConfig, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2.AccessKey, cfg.R2.SecretKey, "")),
			awsconfig.WithRegion("auto"),
		)
		if err != nil {
			logger.Error("error creating aws config", "error", err)
			os.Exit(1)
		}
		workerConfig.R2 = &cfg.R2
		workerConfig.Bucket = resume.NewR2Client(awsConfig, cfg.R2.AccountID)
	} else {
		logger.Warn("R2 settings incomplete, resume imports disabled")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Error("error connecting to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer conn.Close()
	publisher := &AMQPPublisher{Conn: conn}
	if err := publisher.Setup(); err != nil {
		logger.Error("error setting up RabbitMQ topology", "error", err)
		os.Exit(1)
	}
	workerConfig.Publisher = publisher

	api := &httpapi.API{Insights: workerConfig.Insights, Assessments: dbqueries, Exams: dbqueries, Logger: logger}
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: api.Router(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	go workerConfig.StartRefresher(ctx, cfg.RefreshInterval)

	logger.Info("starting consumer pool", "workers", cfg.WorkerCount)
	workerConfig.StartConsumerWorkerPool(ctx, cfg.WorkerCount)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	logger.Info("worker stopped")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rejoyj/Resume-Filter/internal/api"
	"github.com/rejoyj/Resume-Filter/internal/config"
	"github.com/rejoyj/Resume-Filter/internal/logger"
	"github.com/rejoyj/Resume-Filter/internal/notify"
	"github.com/rejoyj/Resume-Filter/internal/parser"
	"github.com/rejoyj/Resume-Filter/internal/repository"
	"github.com/rejoyj/Resume-Filter/internal/scoring"
	"github.com/rejoyj/Resume-Filter/internal/screening"
)

// unconfiguredTransport rejects every send with a non-retryable error. It
// stands in when no Gmail credentials are configured so the rest of the
// engine still runs.
type unconfiguredTransport struct{}

func (unconfiguredTransport) Send(ctx context.Context, to, subject, body string) error {
	return errors.New("mail transport is not configured, set gmail credentials")
}

func main() {
	// Missing .env is fine; the environment may already be set.
	godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		os.Stderr.WriteString("invalid config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		os.Stderr.WriteString("failed to build logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	scorer, err := scoring.NewScorer(cfg.ScoringWeights)
	if err != nil {
		log.Fatal("invalid scoring weights", zap.Error(err))
	}

	screener := screening.NewScreener(scorer, repository.NewMemoryRepository(), log)
	parseClient := parser.NewClient(cfg.ParserServiceURL, log)

	var transport notify.Transport = unconfiguredTransport{}
	if cfg.GmailCredentialsPath != "" {
		gmail, err := notify.NewGmailTransport(context.Background(), cfg.GmailCredentialsPath, cfg.GmailTokenPath)
		if err != nil {
			log.Fatal("failed to initialize Gmail transport", zap.Error(err))
		}
		transport = gmail
	} else {
		log.Warn("no Gmail credentials configured, mail endpoints will reject sends")
	}

	dispatcher := notify.NewDispatcher(
		transport,
		cfg.DispatchConcurrency,
		cfg.DispatchMaxAttempts,
		time.Duration(cfg.DispatchInitialDelayMS)*time.Millisecond,
		log,
	)

	server := api.NewServer(screener, parseClient, dispatcher, notify.NewRegistry(), cfg.PageSize, log)

	log.Info("starting results engine",
		zap.String("port", cfg.Port),
		zap.String("parser_service", cfg.ParserServiceURL),
	)
	if err := http.ListenAndServe(":"+cfg.Port, server.Router()); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/JaideepCherukuri/vercelgateway-azurefoundry/internal/check"
	"github.com/JaideepCherukuri/vercelgateway-azurefoundry/internal/foundry"
	"github.com/JaideepCherukuri/vercelgateway-azurefoundry/internal/infra"
	"github.com/JaideepCherukuri/vercelgateway-azurefoundry/internal/storage"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		outputFlag   string
		intervalFlag time.Duration
		maxWaitFlag  time.Duration
	)
	flag.StringVar(&outputFlag, "output", "", "Path for the downloaded video (fallbacks to environment)")
	flag.DurationVar(&intervalFlag, "poll-interval", 0, "Interval between video job status checks")
	flag.DurationVar(&maxWaitFlag, "poll-max-wait", 0, "Ceiling on total video job wait time")
	flag.Parse()

	// Load .env (optional)
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	logger := infra.NewLogger(cfg.AppEnv)

	outputPath := cfg.OutputPath
	if outputFlag != "" {
		outputPath = outputFlag
	}
	pollInterval := cfg.PollInterval
	if intervalFlag > 0 {
		pollInterval = intervalFlag
	}
	pollMaxWait := cfg.PollMaxWait
	if maxWaitFlag > 0 {
		pollMaxWait = maxWaitFlag
	}

	client, err := foundry.NewClient(foundry.Options{
		APIKey:         cfg.APIKey,
		BaseURL:        cfg.Endpoint,
		RequestTimeout: cfg.HTTPTimeout,
		Logger:         &logger,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to construct client")
		return 1
	}

	dir := filepath.Dir(outputPath)
	if dir == "" {
		dir = "."
	}
	store, err := storage.NewFileStore(dir)
	if err != nil {
		logger.Error().Err(err).Msg("failed to prepare output directory")
		return 1
	}

	suite, err := check.NewSuite(check.SuiteOptions{
		Client:       client,
		Store:        store,
		Logger:       &logger,
		Out:          os.Stdout,
		OutputName:   filepath.Base(outputPath),
		PollInterval: pollInterval,
		PollMaxWait:  pollMaxWait,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to construct suite")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Azure AI Foundry model smoke test\nEndpoint: %s\n", client.BaseURL())
	results := suite.Run(ctx)
	check.WriteSummary(os.Stdout, results)
	return check.ExitCode(results)
}

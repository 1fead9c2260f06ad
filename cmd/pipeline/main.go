package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studyflow/internal/assembler"
	"studyflow/internal/batch"
	"studyflow/internal/config"
	"studyflow/internal/gateway"
	"studyflow/internal/logger"
	"studyflow/internal/processor"
	"studyflow/internal/segmenter"
	"studyflow/internal/state"
	"studyflow/internal/summarizer"
	"studyflow/internal/watcher"
	"studyflow/pkg/ratelimit"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	watch := flag.Bool("watch", false, "keep running and process new transcripts as they appear")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Study Material Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Provider: %s (%s)", cfg.Generation.Provider, cfg.Generation.Model)
	log.Info(ctx, "Configuration loaded successfully")

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	proc, err := buildProcessor(cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to build pipeline: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info(ctx, "Shutdown signal received")
		cancel()
	}()

	if *watch {
		runWatch(ctx, cfg, proc, log)
		return
	}

	result, err := proc.ProcessAll(ctx)
	if result != nil {
		fmt.Print(batch.TextReport(result))
	}
	if err != nil {
		log.Error(ctx, "Batch run failed: %v", err)
		os.Exit(1)
	}
	if result.TotalFiles > 0 && len(result.Successful) == 0 {
		os.Exit(1)
	}
}

func buildProcessor(cfg *config.Config, log logger.Logger) (processor.Processor, error) {
	gw, err := gateway.New(cfg.Generation, log)
	if err != nil {
		return nil, fmt.Errorf("create gateway: %w", err)
	}

	seg, err := segmenter.New(cfg.Segmenter.TargetSize, cfg.Segmenter.Overlap)
	if err != nil {
		return nil, fmt.Errorf("create segmenter: %w", err)
	}

	limiter := ratelimit.New(time.Duration(cfg.Generation.RateLimitMs) * time.Millisecond)
	summ := summarizer.New(gw, limiter, log, cfg.Generation.TokenBudget)
	asm := assembler.New(gw, limiter, log, cfg.Generation.TokenBudget)
	store := state.NewStore(cfg.Paths.StateFile)

	return processor.New(cfg, seg, summ, asm, store, log), nil
}

func runWatch(ctx context.Context, cfg *config.Config, proc processor.Processor, log logger.Logger) {
	handler := func(ctx context.Context, filePath string) error {
		_, err := proc.Process(ctx, filePath)
		return err
	}

	w, err := watcher.New(cfg.Paths.Input, handler, log)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Pipeline is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	if err := w.Start(ctx); err != nil && err != context.Canceled {
		log.Error(ctx, "Watcher error: %v", err)
		os.Exit(1)
	}

	log.Info(ctx, "Pipeline stopped")
}

// ensureDirectories creates the input and output directories if they
// don't exist.
func ensureDirectories(cfg *config.Config) error {
	for _, dir := range []string{cfg.Paths.Input, cfg.Paths.Output} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

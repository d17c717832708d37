package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/tripscope/pkg/config"
	"github.com/umputun/tripscope/pkg/embed"
	"github.com/umputun/tripscope/pkg/llm"
	"github.com/umputun/tripscope/pkg/preference"
	"github.com/umputun/tripscope/pkg/repository"
	"github.com/umputun/tripscope/pkg/scheduler"
	"github.com/umputun/tripscope/pkg/service"
	"github.com/umputun/tripscope/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address (overrides config)"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	SetupLog(opts.Debug)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	lgr.Print("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}

	// api keys must never show up in logs
	SetupLog(opts.Debug, cfg.Embedding.APIKey, cfg.LLM.APIKey)
	lgr.Printf("[INFO] starting tripscope version %s", revision)

	schema := preference.DefaultSchema()
	if cfg.Preferences.SchemaFile != "" {
		if schema, err = preference.LoadSchema(cfg.Preferences.SchemaFile); err != nil {
			return fmt.Errorf("failed to load preference schema: %w", err)
		}
	}
	lgr.Printf("[INFO] preference schema with %d fields", len(schema.AllFields()))

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	embedder := embed.NewOpenAI(cfg.GetEmbeddingConfig())

	// stored anchor vectors of another model or size can't be compared with new queries
	if _, err := repos.SyncEmbeddingModel(ctx, embedder.StoreKey()); err != nil {
		return fmt.Errorf("failed to sync embedding model: %w", err)
	}

	resolverCfg := preference.ResolverConfig{
		Threshold:   cfg.Preferences.Threshold,
		Concurrency: cfg.Preferences.Concurrency,
	}
	var warmer scheduler.Warmer
	if cfg.Preferences.CacheAnchors {
		cache := embed.NewCache(embedder, embed.CacheOpts{
			Model:       embedder.StoreKey(),
			Store:       repos.Embedding,
			Concurrency: cfg.Preferences.Concurrency,
		})
		resolverCfg.AnchorEmbedder = cache
		warmer = cache
	}
	resolver := preference.NewResolver(schema, embedder, resolverCfg)

	// questioner stays a nil interface without llm, never a typed nil
	var questioner service.Questioner
	if cfg.LLM.Enabled() {
		questioner = llm.NewPrompter(cfg.GetLLMConfig())
		lgr.Printf("[INFO] follow-up questions by %s", cfg.LLM.Model)
	}
	conversations := service.NewConversations(resolver, repos.Session, questioner)

	sched := scheduler.NewScheduler(repos.Session, warmer, scheduler.Config{
		Examples:        schema.Examples(),
		SessionTTL:      cfg.Sessions.TTL,
		CleanupInterval: cfg.Sessions.CleanupInterval,
	})
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(cfg, conversations, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// SetupLog configures lgr and the standard logger, secrets are masked in output
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	var masked []string
	for _, s := range secs {
		if s != "" {
			masked = append(masked, s)
		}
	}
	if len(masked) > 0 {
		logOpts = append(logOpts, lgr.Secret(masked...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}

package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/zombor/receipt-processor/internal/receipt"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run starts the service and returns the process exit code.
// Deferred cleanup runs before the process exits.
func run(args []string) int {
	// Check for version flag before parsing other flags
	for _, arg := range args {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			return 0
		}
	}

	fs := ff.NewFlagSet("receipt-processor")
	var (
		port             = fs.IntLong("port", 8080, "HTTP server port")
		dbPath           = fs.StringLong("db", "", "BoltDB file path (receipts are kept in memory when empty)")
		exposeViolations = fs.BoolLong("expose-violations", "Include field-level validation errors in responses")
		logLevel         = fs.StringLong("log-level", "info", "Log level: debug, info, warn or error")
		logFormat        = fs.StringLong("log-format", "text", "Log format: 'text' or 'json'")
		_                = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, args,
		ff.WithEnvVarPrefix("RECEIPT_PROCESSOR"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	logger, err := newLogger(*logLevel, *logFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	slog.SetDefault(logger)

	// Initialize store
	var store receipt.Store
	if *dbPath == "" {
		slog.Info("Using in-memory store; receipts are lost on exit")
		store = receipt.NewMemoryStore()
	} else {
		slog.Info("Initializing database...", "path", *dbPath)
		db, err := receipt.NewBoltStore(*dbPath)
		if err != nil {
			slog.Error("Failed to initialize database", "error", err)
			return 1
		}
		defer func() {
			if err := db.Close(); err != nil {
				slog.Error("Failed to close database", "error", err)
			}
		}()
		store = db
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Initialize service and server
	receiptService := receipt.NewService(store, receipt.NewMetrics(registry))
	server := receipt.NewServer(receiptService, receipt.Options{
		ExposeViolations: *exposeViolations,
		Gatherer:         registry,
	})

	addr := fmt.Sprintf(":%d", *port)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(addr)
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr), "version", version)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("Server error", "error", err)
			return 1
		}
		return 0
	case <-sigChan:
	}

	slog.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Shutdown error", "error", err)
		return 1
	}
	return 0
}

// newLogger builds the process logger from the log flags
func newLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: want 'text' or 'json'", format)
	}
}

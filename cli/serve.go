package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Daniel-dg-conta1/math-Suite/server"
)

// shutdownTimeout bounds the wait for in-flight requests on exit.
const shutdownTimeout = 10 * time.Second

// ServeCommand implements the 'serve' command.
func ServeCommand(args []string) {
	fs := newFlagSet("serve", "[options]", "Start the HTTP API.")
	configFile := fs.String("config", "", "YAML configuration file")
	addr := fs.String("addr", "", "Listen address (default from config, :8080)")
	verbose := fs.Bool("v", false, "Verbose logging")
	if !parseFlags(fs, args[2:]) {
		return
	}
	if err := runServe(*configFile, *addr, *verbose); err != nil {
		fail(err)
	}
}

func runServe(configFile, addr string, verbose bool) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Address = addr
	}
	logger, closeLog, err := commandLogger(cfg, verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	srv := server.New(cfg, logger)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Listen() }()

	select {
	case err := <-errc:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

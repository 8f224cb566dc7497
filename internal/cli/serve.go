package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/GamingDebugged/starkiller-sub002/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	srv := server.New(e.driver, e.db, e.ledger, e.cfg.StartingCredits, VersionString())

	// Optional cron-driven day advance while the server runs.
	var scheduler *cron.Cron
	if spec := e.cfg.AdvanceCron; spec != "" {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(spec, func() {
			report, err := srv.AdvanceNextDay()
			if err != nil {
				fmt.Fprintf(os.Stderr, "auto-advance: %v\n", err)
				return
			}
			fmt.Fprintf(os.Stderr, "auto-advance: day %d, %d events\n", report.Day, len(report.Events))
		})
		if err != nil {
			return fmt.Errorf("parse advance cron %q: %w", spec, err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		fmt.Fprintf(os.Stderr, "  auto-advance: %s\n", spec)
	}

	httpServer := &http.Server{
		Addr:    e.cfg.ListenAddr(),
		Handler: srv,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	fmt.Fprintf(os.Stderr, "starkiller listening on http://%s (day %d)\n", e.cfg.ListenAddr(), e.driver.Day())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("serve: %w", err)
		}
	case <-sigCh:
		fmt.Fprintln(os.Stderr, "shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}

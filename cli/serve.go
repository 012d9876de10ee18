package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotel-booking/services"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func NewServeCommand() *cobra.Command {
	var noScheduler bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(ctxOf(cmd), noScheduler)
		},
	}
	cmd.Flags().BoolVar(&noScheduler, "no-scheduler", false, "do not expire pending reservations in this process")
	return cmd
}

func runServe(ctx context.Context, noScheduler bool) error {
	a, err := connect(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	log.Println("✅ Database connection established and migrations applied.")

	if !noScheduler {
		sched, err := services.StartExpiryScheduler(a.Reservations, a.Config.ExpiryInterval)
		if err != nil {
			return err
		}
		defer func() {
			if err := sched.Shutdown(); err != nil {
				log.Printf("warning: scheduler shutdown: %v", err)
			}
		}()
	}

	addr := ":" + a.Config.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-quit:
	}
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("✅ Server stopped gracefully")
	return nil
}

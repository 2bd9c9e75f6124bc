package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-auditor/internal/pinned"
	"github.com/spigell/career-auditor/internal/secrets"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the admin endpoint for featured listings",
	Run: func(_ *cobra.Command, _ []string) {
		runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() {
	ctx, cancel := signalContext()
	defer cancel()

	logger := newLogger()

	a, err := newApplication(ctx, logger)
	if err != nil {
		logger.Fatal("starting", zap.Error(err))
	}
	defer a.Close()

	admin := a.config.Admin
	one, two, err := secrets.LoadPair(
		secrets.Source{Name: "admin secret one", Value: admin.SecretOne, File: admin.SecretOneFile},
		secrets.Source{Name: "admin secret two", Value: admin.SecretTwo, File: admin.SecretTwoFile},
	)
	if err != nil {
		logger.Fatal("loading admin secrets", zap.Error(err))
	}

	mux := http.NewServeMux()
	mux.Handle("/api/pinned", pinned.NewHandler(a.pinned, pinned.Credentials{SecretOne: one, SecretTwo: two},
		logger.With(zap.String("component", "admin"))))

	srv := &http.Server{
		Addr:              admin.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutting down", zap.Error(err))
		}
	}()

	logger.Info("serving admin endpoint", zap.String("listen", admin.Listen), zap.String("file", a.pinned.Path()))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("serving", zap.Error(err))
	}
	logger.Info("exiting", zap.String("reason", "got a signal"))
}

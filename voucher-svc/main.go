package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"wedding-voucher/config"
	httpapi "wedding-voucher/voucher-svc/internal/api/http"
	"wedding-voucher/voucher-svc/internal/notify"
	"wedding-voucher/voucher-svc/internal/service"
	"wedding-voucher/voucher-svc/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "voucher-svc",
		Short:         "Wedding voucher issuance and delivery service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(workerCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(selfTestCmd())
	return rootCmd
}

func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, config.NewLogger(cfg.LogLevel).With().Str("service", "voucher-svc").Logger(), nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			rdb := config.MustInitRedis(cfg.Redis, log)
			defer rdb.Close()
			writer := config.NewKafkaWriter(cfg.Kafka)
			defer writer.Close()

			dispatcher := service.NewDispatcher(
				storage.NewRedisMarker(rdb, cfg.Redis.DispatchTTL),
				storage.NewKafkaPublisher(writer),
				log,
			)
			handler := httpapi.NewHandler(
				service.NewQRService(),
				storage.NewFileStore(cfg.QR.StorageDir, cfg.PublicBaseURL+cfg.QR.URLPrefix),
				dispatcher,
				log,
			)

			handler.FilesPrefix = cfg.QR.URLPrefix
			handler.FilesDir = cfg.QR.StorageDir

			router := httpapi.NewRouter(handler)
			server := httpapi.NewServer(cfg.HTTPAddr, router)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", cfg.HTTPAddr).Msg("voucher service starting")
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down http server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
}

func workerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Consume voucher jobs and run the issuance pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			db := config.MustInitPostgres(cfg.DB, log)
			defer db.Close()
			reader := config.NewKafkaReader(cfg.Kafka)
			defer reader.Close()
			writer := config.NewKafkaWriter(cfg.Kafka)
			defer writer.Close()

			mailClient, err := notify.NewMailClient(cfg.Mail)
			if err != nil {
				return err
			}

			repo := storage.NewPostgresRepository(db)
			pipeline := service.NewPipeline(
				repo,
				repo,
				service.RandomCodeGenerator{},
				service.NewQRService(),
				notify.NewSMTPEmailSender(mailClient, cfg.Mail, log),
				notify.NewWahaChatSender(notify.ChatConfig{
					BaseURL: cfg.Waha.BaseURL,
					Session: cfg.Waha.Session,
					APIKey:  cfg.Waha.APIKey,
					Timeout: cfg.Waha.Timeout,
				}, nil, log),
				log,
			)
			consumer := service.NewConsumer(
				reader,
				pipeline,
				storage.NewKafkaPublisher(writer),
				cfg.Kafka.MaxAttempts,
				cfg.Kafka.RetryDelay,
				log,
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			consumer.Start(ctx)
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	var down bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			db := config.MustInitPostgres(cfg.DB, log)
			defer db.Close()
			return storage.Migrate(db, down, log)
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "Roll back the latest migration instead")
	return cmd
}

func selfTestCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "qr-selftest",
		Short: "Render a test voucher QR code and report its size",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelfTest(cmd.OutOrStdout(), service.NewQRService(), outDir, time.Now())
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "./storage/public/qrcodes", "Directory for the rendered test image")
	return cmd
}

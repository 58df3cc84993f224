// Command gotlmem runs the translation memory pipeline: the HTTP server,
// content scans, batch translation and orphan cleanup.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/gotlmem"
	"github.com/ZaguanLabs/gotlmem/batch"
	"github.com/ZaguanLabs/gotlmem/config"
	"github.com/ZaguanLabs/gotlmem/content"
	"github.com/ZaguanLabs/gotlmem/provider"
	"github.com/ZaguanLabs/gotlmem/reconcile"
	"github.com/ZaguanLabs/gotlmem/scan"
	"github.com/ZaguanLabs/gotlmem/store"
	"github.com/ZaguanLabs/gotlmem/web"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app bundles the wired components every subcommand works with.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	db       *sql.DB
	memory   *store.Store
	repo     *content.SQLRepository
	provider provider.Provider
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
	if closer, ok := a.provider.(interface{ Close() error }); ok {
		closer.Close()
	}
}

func setup() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	var p provider.Provider = provider.NewClient(provider.ClientConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
	})
	if cfg.RedisURL != "" {
		cached, err := provider.NewCachedProvider(p, provider.CachedConfig{
			URL: cfg.RedisURL,
			TTL: cfg.RedisTTL,
		})
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		p = cached
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		memory:   store.New(db),
		repo:     content.NewRepository(db),
		provider: p,
	}, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           gotlmem.Name,
		Short:         "Content-aware translation memory pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newScanCmd(), newTranslateCmd(), newOrphansCmd(), newVersionCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the localized site and the admin API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.close()

			scanner := scan.New(a.memory, a.repo, a.cfg.TargetLang, a.logger)
			rec := reconcile.New(a.memory, a.repo, a.logger)
			api := web.NewAPI(a.memory, a.provider, scanner, rec,
				a.cfg.TargetLang, a.cfg.BatchDelay, a.logger)
			site := web.NewSite(a.memory, a.repo, a.cfg.SourceLang, a.cfg.TargetLang, a.logger)
			resolver := web.NewResolver(a.cfg.SourceLang, a.cfg.TargetLang)

			srv := &http.Server{
				Addr:    a.cfg.ListenAddr,
				Handler: web.NewRouter(resolver, site, api, a.logger),
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("server listening",
					"addr", a.cfg.ListenAddr,
					"source", a.cfg.SourceLang,
					"target", a.cfg.TargetLang)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "scan [products|pages]",
		Short:     "Scan content for translatable strings",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"products", "pages"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.close()

			scanner := scan.New(a.memory, a.repo, a.cfg.TargetLang, a.logger)
			what := "all"
			if len(args) == 1 {
				what = args[0]
			}

			if what == "all" || what == "products" {
				res, err := scanner.Products(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Printf("products: scanned %d, %d new strings\n", res.Scanned, res.Inserted)
			}
			if what == "all" || what == "pages" {
				res, err := scanner.Pages(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Printf("pages: scanned %d, %d new strings\n", res.Scanned, res.Inserted)
			}
			return nil
		},
	}
}

func newTranslateCmd() *cobra.Command {
	var all bool
	var batchSize int

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Machine-translate pending strings",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.close()

			size := batchSize
			if size <= 0 {
				size = a.cfg.BatchSize
			}
			engine := batch.NewEngine(a.memory, a.provider, a.cfg.TargetLang,
				batch.WithBatchLimit(size),
				batch.WithDelay(a.cfg.BatchDelay),
				batch.WithLogger(a.logger))

			var res *batch.Result
			if all {
				res, err = engine.RunAll(cmd.Context(), func(b *batch.Result) {
					fmt.Printf("batch: %d translated, %d failed, %d remaining\n",
						b.Translated, len(b.Errors), b.Remaining)
				})
			} else {
				res, err = engine.RunBatch(cmd.Context())
			}
			if err != nil && !errors.Is(err, batch.ErrStalled) {
				return err
			}

			fmt.Printf("total: %d translated, %d failed, %d remaining\n",
				res.Translated, len(res.Errors), res.Remaining)
			if errors.Is(err, batch.ErrStalled) {
				fmt.Println("stopped: remaining strings keep failing, fix the errors and rerun")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "keep translating until nothing is pending")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "strings per batch (default from config)")
	return cmd
}

func newOrphansCmd() *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "orphans",
		Short: "Count or remove memory entries whose content is gone",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.close()

			rec := reconcile.New(a.memory, a.repo, a.logger)
			if !clear {
				n, err := rec.Count(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Printf("%d orphaned locations\n", n)
				return nil
			}

			res, err := rec.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("removed %d locations and %d strings\n",
				res.LocationsRemoved, res.StringsRemoved)
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "remove orphaned entries")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(gotlmem.FullVersion())
		},
	}
}

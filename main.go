package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/autobookkeeping/statement-extractor/internal/api"
	"github.com/autobookkeeping/statement-extractor/internal/config"
	"github.com/autobookkeeping/statement-extractor/internal/engine"
	"github.com/autobookkeeping/statement-extractor/internal/extractor"
	"github.com/autobookkeeping/statement-extractor/internal/parser"
	"github.com/autobookkeeping/statement-extractor/internal/registry"
	"github.com/autobookkeeping/statement-extractor/internal/writer"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	root := &cobra.Command{
		Use:   "statement-extractor",
		Short: "Extract normalized transactions from bank statement PDFs",
		Long: `statement-extractor converts bank statement PDFs into normalized
transaction lists. Supported banks: ` + strings.Join(parser.SupportedBanks(), ", ") + `.
Unrecognized layouts fall back to a best-effort generic extractor with a
correspondingly lower confidence score.`,
	}
	root.AddCommand(newConvertCmd(), newServeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newConvertCmd() *cobra.Command {
	var (
		outputPath    string
		format        string
		includeHeader bool
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "convert <input.pdf> [input2.pdf ...]",
		Short: "Convert statement PDFs to CSV or JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !verbose {
				zerolog.SetGlobalLevel(zerolog.WarnLevel)
			}
			if format != "csv" && format != "json" {
				return fmt.Errorf("unsupported format %q (use csv or json)", format)
			}

			// One in-memory registry per run: re-listing the same file twice
			// on the command line is caught, but separate runs are not.
			eng := engine.New(registry.NewMemory(), log.Logger)

			opts := convertOptions{output: outputPath, format: format, includeHeader: includeHeader}
			for _, inputPath := range args {
				if err := processFile(cmd.Context(), eng, inputPath, opts); err != nil {
					return fmt.Errorf("processing %s: %w", inputPath, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path (defaults to input filename with the format's extension)")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Output format: csv or json")
	cmd.Flags().BoolVar(&includeHeader, "header", true, "Include statement metadata header rows in CSV")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log extraction details")
	return cmd
}

type convertOptions struct {
	output        string
	format        string
	includeHeader bool
}

func processFile(ctx context.Context, eng *engine.Engine, inputPath string, opts convertOptions) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	src, err := extractor.Open(inputPath)
	if err != nil {
		return err
	}
	defer src.Close()

	result, err := eng.Extract(ctx, src)
	if err != nil {
		return err
	}

	fmt.Printf("  Bank: %s\n", result.BankName)
	fmt.Printf("  Found %d transaction(s), confidence %.2f\n", len(result.Transactions), result.Confidence)
	if len(result.Transactions) == 0 {
		fmt.Println("  Warning: no transactions found. The layout may not match any known pattern.")
	}

	outPath := opts.output
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "." + opts.format
	}

	switch opts.format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("JSON encoding failed: %w", err)
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("JSON write failed: %w", err)
		}
	default:
		w := &writer.CSVWriter{IncludeHeader: opts.includeHeader}
		if err := w.WriteToFile(outPath, result); err != nil {
			return fmt.Errorf("CSV write failed: %w", err)
		}
	}

	fmt.Printf("  Output: %s\n", outPath)
	return nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP conversion API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			level, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				level = zerolog.InfoLevel
			}
			zerolog.SetGlobalLevel(level)
			if cfg.LogFormat == "json" {
				log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
			}

			ctx := cmd.Context()
			reg := buildRegistry(ctx, cfg)

			eng := engine.New(reg, log.Logger)
			handler := &api.Handler{Engine: eng}

			app := fiber.New(fiber.Config{
				BodyLimit:             cfg.HTTPBodyLimit,
				DisableStartupMessage: true,
			})
			handler.Register(app)

			go func() {
				log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
				if err := app.Listen(":" + cfg.HTTPPort); err != nil {
					log.Fatal().Err(err).Msg("server failed")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			log.Info().Msg("shutting down server")
			return app.ShutdownWithTimeout(10 * time.Second)
		},
	}
}

// buildRegistry wires the duplicate gate: redis when configured and
// reachable, degrading to a process-lifetime in-memory set otherwise.
func buildRegistry(ctx context.Context, cfg *config.Config) registry.Registry {
	if cfg.RedisURL == "" {
		log.Warn().Msg("REDIS_URL not set, duplicate registry is in-memory only")
		return registry.NewMemory()
	}
	redisReg, err := registry.NewRedis(ctx, cfg.RedisURL, cfg.RegistryTTL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, duplicate registry is in-memory only")
		return registry.NewMemory()
	}
	log.Info().Msg("connected to redis duplicate registry")
	return registry.NewFailover(redisReg, log.Logger)
}

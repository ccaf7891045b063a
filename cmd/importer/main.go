package main

import (
	"context"
	"fmt"
	"os"

	"seismic-api/internal/config"
	"seismic-api/internal/logger"
	"seismic-api/internal/reference"
	"seismic-api/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	files     []string
	table     string
	replace   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "importer",
	Short: "Import reference CSV/XLSX files into a PostgreSQL table",
	Long:  "Reads one or more reference files with the same columns, validates them like the API does at startup and bulk copies the merged rows into a table.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringSliceVarP(&files, "file", "f", nil, "reference file to import (repeatable, merged in order)")
	rootCmd.Flags().StringVarP(&table, "table", "t", "", "destination table")
	rootCmd.Flags().BoolVar(&replace, "replace", false, "drop the destination table before importing")
	rootCmd.Flags().StringVar(&configDir, "config", "configs", "directory containing app.env")
	_ = rootCmd.MarkFlagRequired("file")
	_ = rootCmd.MarkFlagRequired("table")
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Setup(cfg.LogLevel, "console")

	if cfg.DBSource == "" {
		return fmt.Errorf("DB_SOURCE is required")
	}

	sources := make([]reference.Source, 0, len(files))
	for _, f := range files {
		src, err := reference.FileSource(f)
		if err != nil {
			return err
		}
		sources = append(sources, src)
	}

	log.Info().Strs("files", files).Msg("starting import")

	ref, err := reference.Load(ctx, sources...)
	if err != nil {
		return fmt.Errorf("parse reference files: %w", err)
	}
	log.Info().Int("records", ref.Len()).Msg("parsed reference files")

	conn, err := pgx.Connect(ctx, cfg.DBSource)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer conn.Close(ctx)

	repo := repository.NewRepository(conn)

	if err := repo.CreateReferenceTable(ctx, table, ref, replace); err != nil {
		return err
	}

	copied, err := repo.CopyReferenceTable(ctx, table, ref)
	if err != nil {
		return err
	}

	// Verify data
	count, err := repo.CountRows(ctx, table)
	if err != nil {
		return err
	}
	if count != ref.Len() {
		return fmt.Errorf("record count mismatch in %s: expected %d, got %d", table, ref.Len(), count)
	}

	log.Info().Int64("copied", copied).Str("table", table).Msg("import finished")
	return nil
}

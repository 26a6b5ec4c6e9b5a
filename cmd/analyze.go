package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bakerbass/guitarchops/internal/database"
	"github.com/bakerbass/guitarchops/internal/models"
)

var (
	analyzeTypes string
	analyzePeaks bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze an audio file from the command line",
	Long: `Run the analysis pipeline over a local audio file and print the
result as JSON, without starting the API server. The file is registered
against the configured database, so a later serve run sees it too.

Example:
  guitarchops analyze riff.wav
  guitarchops analyze riff.wav --types key,tempo
  guitarchops analyze riff.wav --peaks`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeTypes, "types", "", "comma-separated segment types (default all)")
	analyzeCmd.Flags().BoolVar(&analyzePeaks, "peaks", false, "print waveform peaks instead of segments")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	enabled, err := parseSegmentTypes(analyzeTypes)
	if err != nil {
		return err
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.LogQueries)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer db.Close()
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	deps, _, err := buildDependencies(cfg, db)
	if err != nil {
		return err
	}

	ctx := context.Background()
	source := args[0]

	// Register consumes its input file, so hand it a staged copy.
	staged, err := stageCopy(source, cfg.Storage.UploadDir)
	if err != nil {
		return err
	}
	track, err := deps.TrackService.Register(ctx, staged, filepath.Base(source))
	if err != nil {
		os.Remove(staged)
		return fmt.Errorf("registering %s: %w", source, err)
	}

	var output interface{}
	if analyzePeaks {
		output, err = deps.Analyzer.ComputePeaks(ctx, track, nil)
	} else {
		output, err = deps.Analyzer.ComputeSegments(ctx, track, enabled, nil)
	}
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return nil
}

func stageCopy(source, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}

	in, err := os.Open(source)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", source, err)
	}
	defer in.Close()

	staged := filepath.Join(dir, "cli_"+uuid.NewString()+filepath.Ext(source))
	out, err := os.Create(staged)
	if err != nil {
		return "", fmt.Errorf("staging copy: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		os.Remove(staged)
		return "", fmt.Errorf("staging copy: %w", err)
	}
	return staged, nil
}

func parseSegmentTypes(spec string) ([]models.SegmentType, error) {
	if spec == "" {
		return nil, nil
	}
	var enabled []models.SegmentType
	for _, name := range strings.Split(spec, ",") {
		t := models.SegmentType(strings.TrimSpace(name))
		if !models.ValidSegmentType(t) {
			return nil, fmt.Errorf("unknown segment type %q", t)
		}
		enabled = append(enabled, t)
	}
	return enabled, nil
}

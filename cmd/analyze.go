package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/effdiff/application"
	"github.com/rios0rios0/effdiff/config"
	"github.com/rios0rios0/effdiff/domain"
	"github.com/rios0rios0/effdiff/infrastructure/contents/fsdir"
	"github.com/rios0rios0/effdiff/infrastructure/contents/gitrepo"
	"github.com/rios0rios0/effdiff/infrastructure/diffparse"
)

const artifactFileMode = 0o644

//nolint:gochecknoglobals // required by cobra CLI pattern
var (
	diffFile string
	repoPath string
	oldRev   string
	newRev   string
	oldDir   string
	newDir   string

	minBlockSize int
	contextLines int
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Reduce a diff by eliding relocated blocks",
	Long: `Parse a unified diff, detect relocated blocks, and produce the
effective diff plus the move report.

File contents for both revisions come either from a git repository
(--repo with --old-rev and --new-rev) or from two directory trees
(--old-dir and --new-dir).`,
	RunE: runAnalyze,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	analyzeCmd.Flags().StringVar(&diffFile, "diff", "",
		"Path to the unified diff to reduce (required)")
	analyzeCmd.Flags().StringVar(&repoPath, "repo", "",
		"Path to a git repository providing file contents")
	analyzeCmd.Flags().StringVar(&oldRev, "old-rev", "",
		"Old revision in the repository (with --repo)")
	analyzeCmd.Flags().StringVar(&newRev, "new-rev", "",
		"New revision in the repository (with --repo)")
	analyzeCmd.Flags().StringVar(&oldDir, "old-dir", "",
		"Directory tree with old file contents")
	analyzeCmd.Flags().StringVar(&newDir, "new-dir", "",
		"Directory tree with new file contents")
	analyzeCmd.Flags().IntVar(&minBlockSize, "min-block-size", 0,
		"Minimum matched lines for a reported move (0 = engine default)")
	analyzeCmd.Flags().IntVar(&contextLines, "context-lines", 0,
		"Context padding around re-diffed regions (0 = engine default)")
	_ = analyzeCmd.MarkFlagRequired("diff")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)

	svc, err := injectService(cfg)
	if err != nil {
		return err
	}

	provider, err := buildContentProvider()
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(diffFile)
	if err != nil {
		return fmt.Errorf("failed to read diff file %q: %w", diffFile, err)
	}
	diff, err := diffparse.Parse(string(raw))
	if err != nil {
		return fmt.Errorf("failed to parse diff file %q: %w", diffFile, err)
	}

	result, err := svc.Run(ctx, diff, provider, application.Options{
		MinBlockSize:         cfg.Engine.MinBlockSize,
		ContextLines:         cfg.Engine.ContextLines,
		MinSignificantLength: cfg.Engine.MinSignificantLength,
		Parallelism:          cfg.Engine.Parallelism,
	})
	if err != nil {
		return fmt.Errorf("pipeline aborted: %w", err)
	}

	logger.Infof(
		"%d move(s) detected, %d line(s) elided from the diff",
		result.Report.MovesDetected, result.Report.TotalLinesMoved,
	)

	if outputDir == "" {
		fmt.Print(diffparse.Render(result.EffectiveDiff))
		return nil
	}
	return writeArtifacts(result)
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var findErr error
		path, findErr = config.FindConfigFile()
		if findErr != nil {
			logger.Debugf("no config file found, using defaults: %v", findErr)
			return config.Default(), nil
		}
	}
	logger.Infof("Using config file: %s", path)

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func applyFlagOverrides(cfg *config.Config) {
	if minBlockSize > 0 {
		cfg.Engine.MinBlockSize = minBlockSize
	}
	if contextLines > 0 {
		cfg.Engine.ContextLines = contextLines
	}
}

func buildContentProvider() (domain.ContentProvider, error) {
	switch {
	case repoPath != "":
		if oldRev == "" || newRev == "" {
			return nil, errors.New("--repo requires both --old-rev and --new-rev")
		}
		return gitrepo.New(repoPath, oldRev, newRev)
	case oldDir != "" && newDir != "":
		return fsdir.New(oldDir, newDir), nil
	default:
		return nil, errors.New("provide either --repo with revisions or --old-dir and --new-dir")
	}
}

func writeArtifacts(result domain.PipelineResult) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir %q: %w", outputDir, err)
	}

	rendered := diffparse.Render(result.EffectiveDiff)
	if err := os.WriteFile(filepath.Join(outputDir, "effective.diff"), []byte(rendered), artifactFileMode); err != nil {
		return fmt.Errorf("failed to write effective.diff: %w", err)
	}

	if err := writeJSON(filepath.Join(outputDir, "effective.json"), result.EffectiveDiff); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(outputDir, "moves.json"), result.Report); err != nil {
		return err
	}

	logger.Infof("Artifacts written to %s", outputDir)
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %q: %w", filepath.Base(path), err)
	}
	if err = os.WriteFile(path, append(data, '\n'), artifactFileMode); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}

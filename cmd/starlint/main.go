package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"starlint/internal/config"
	"starlint/internal/content"
	"starlint/internal/release"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	rootCmd = &cobra.Command{
		Use:           "starlint",
		Short:         "Validate simulation game-data content files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cfgPath string
	rootDir string
	verbose bool
	zipOut  string
)

// Sentinel errors drive the process exit status: issues and bad arguments
// exit 1, anything unexpected exits 2.
var (
	errIssuesFound = errors.New("validation issues found")
	errInvalidRoot = errors.New("invalid root")
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errIssuesFound) || errors.Is(err, errInvalidRoot) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Unexpected failure: %v\n", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "starlint.yaml", "Path to the tool configuration file")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", "", "Content root (overrides the configured root)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	packCmd.Flags().StringVarP(&zipOut, "output", "o", "content_source.zip", "Output zip path (relative paths resolve under the root)")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(packCmd)
}

// resolveRoot applies the --root override on top of the configured root and
// makes it absolute so issue formatting can relativize paths.
func resolveRoot(cfg *config.Config) (string, error) {
	root := cfg.Content.Root
	if rootDir != "" {
		root = rootDir
	}
	return filepath.Abs(root)
}

func newLogger(cfg *config.Config) (*zap.SugaredLogger, error) {
	level := zapcore.InfoLevel
	if err := level.Set(strings.ToLower(cfg.Log.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the content files for schema and cross-reference integrity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		root, err := resolveRoot(cfg)
		if err != nil {
			return err
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		runner := &content.Runner{
			Paths: content.Paths{
				Resources:  filepath.Join(root, filepath.FromSlash(cfg.Content.Resources)),
				Blueprints: filepath.Join(root, filepath.FromSlash(cfg.Content.Blueprints)),
				TechTree:   filepath.Join(root, filepath.FromSlash(cfg.Content.TechTree)),
				Settings:   filepath.Join(root, filepath.FromSlash(cfg.Content.Settings)),
			},
			Log: log,
		}

		issues := runner.Run()
		if len(issues) == 0 {
			return nil
		}
		for _, it := range issues {
			fmt.Fprintln(os.Stderr, it.Format(root))
		}
		fmt.Fprintf(os.Stderr, "\n%d issue(s) found.\n", len(issues))
		return errIssuesFound
	},
}

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Create a clean source zip of the content tree",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		root, err := resolveRoot(cfg)
		if err != nil {
			return err
		}
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			fmt.Fprintf(os.Stderr, "root directory not found: %s\n", root)
			return errInvalidRoot
		}

		// Historical behavior: a relative output lands under the root.
		output := zipOut
		if !filepath.IsAbs(output) {
			output = filepath.Join(root, output)
		}

		n, err := release.CreateSourceZip(root, output, release.DefaultExcludes())
		if err != nil {
			return err
		}

		shown := output
		if rel, err := filepath.Rel(root, output); err == nil && !strings.HasPrefix(rel, "..") {
			shown = rel
		}
		fmt.Printf("Wrote %s (%d file(s))\n", shown, n)
		return nil
	},
}

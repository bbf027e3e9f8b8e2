package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/withgalaxy/trackly/pkg/config"
)

var (
	Version = "0.3.0"
	cfgFile string
	rootDir string
	verbose bool
	silent  bool
)

var rootCmd = &cobra.Command{
	Use:   "trackly",
	Short: "Trackly - project tracking in the browser",
	Long: `Trackly is a client-only project tracker compiled to WebAssembly.

This CLI serves the compiled bundle during development, inspects the
route table the app registers, and scaffolds project configuration.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "project root directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&silent, "silent", false, "disable all logging")
}

func newLogger() *slog.Logger {
	if silent {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func projectDir() (string, error) {
	if rootDir != "" {
		return rootDir, nil
	}
	return os.Getwd()
}

func configPath(dir string) string {
	if cfgFile != "" {
		return cfgFile
	}
	return filepath.Join(dir, config.FileName)
}

func loadConfig() (*config.Config, string, error) {
	dir, err := projectDir()
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.Load(configPath(dir))
	if err != nil {
		return nil, "", fmt.Errorf("load config: %w", err)
	}
	return cfg, dir, nil
}

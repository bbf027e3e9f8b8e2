package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/withgalaxy/trackly/pkg/app"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display environment information",
	Long:  `Display useful information about your current Trackly setup`,
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, dir, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Trackly                  v%s\n", Version)
	fmt.Fprintf(out, "Go                       %s\n", runtime.Version())
	fmt.Fprintf(out, "System                   %s (%s)\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "Working Directory        %s\n", dir)

	if path := configPath(dir); fileExists(path) {
		fmt.Fprintf(out, "Config                   %s\n", path)
	} else {
		fmt.Fprintf(out, "Config                   (defaults)\n")
	}

	outDir := cfg.Build.OutDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(dir, outDir)
	}
	bundle := filepath.Join(outDir, cfg.Build.WasmFile)
	if fileExists(bundle) {
		fmt.Fprintf(out, "Bundle                   %s\n", bundle)
	} else {
		fmt.Fprintf(out, "Bundle                   %s (not built)\n", bundle)
	}

	fmt.Fprintf(out, "Theme                    %s\n", cfg.App.Theme)
	fmt.Fprintf(out, "Routes                   %d\n", len(app.Pages()))
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

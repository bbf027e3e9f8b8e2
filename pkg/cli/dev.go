package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/withgalaxy/trackly/pkg/app"
	"github.com/withgalaxy/trackly/pkg/router"
	"github.com/withgalaxy/trackly/pkg/server"
)

var (
	devPort    int
	devHost    string
	devOpen    bool
	devVerbose bool
)

var devCmd = &cobra.Command{
	Use:     "dev",
	Aliases: []string{"serve"},
	Short:   "Start the development server",
	Long:    `Serve the compiled wasm bundle and reload open tabs when it changes`,
	RunE:    runDev,
}

func init() {
	rootCmd.AddCommand(devCmd)
	devCmd.Flags().IntVar(&devPort, "port", 0, "port to run server on (overrides config)")
	devCmd.Flags().StringVar(&devHost, "host", "", "host to bind to (overrides config)")
	devCmd.Flags().BoolVar(&devOpen, "open", false, "open browser on start")
	devCmd.Flags().BoolVar(&devVerbose, "log-requests", false, "enable request logging")
}

func runDev(cmd *cobra.Command, args []string) error {
	cfg, dir, err := loadConfig()
	if err != nil {
		return err
	}

	if devPort != 0 {
		cfg.Server.Port = devPort
	}
	if devHost != "" {
		cfg.Server.Host = devHost
	}

	logger := newLogger()

	findings := router.Lint(app.Patterns())
	for _, f := range findings {
		logger.Warn("route lint", "pattern", f.Pattern, "severity", f.Severity, "message", f.Message)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewDevServer(cfg, dir, devVerbose, logger)

	if devOpen {
		openBrowser(fmt.Sprintf("http://%s/#%s", cfg.Addr(), cfg.App.StartPath))
	}

	return srv.ListenAndServe(ctx)
}

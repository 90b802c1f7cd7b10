package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tariquesani/dayone-archive/internal/config"
	"github.com/tariquesani/dayone-archive/internal/server"
)

var (
	servePort   int
	serveNoOpen bool
	serveWatch  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generated archive locally",
	Long: `Starts a local HTTP server for the archive directory. The archive's photo
lightbox requires an http origin; opening the files directly from disk leaves
only the plain photo links working.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		if serveNoOpen {
			cfg.OpenBrowser = false
		}
		if serveWatch {
			cfg.LiveReload = true
		}

		if _, err := os.Stat(cfg.ArchiveDir); err != nil {
			return fmt.Errorf("archive directory %s: %w", cfg.ArchiveDir, err)
		}

		srv := server.New(server.Config{
			Dir:         cfg.ArchiveDir,
			Port:        cfg.Port,
			OpenBrowser: cfg.OpenBrowser,
			LiveReload:  cfg.LiveReload,
		}, newLogger())

		// Stop cleanly on Ctrl+C.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8000, "port to listen on")
	serveCmd.Flags().BoolVar(&serveNoOpen, "no-open", false, "do not open the browser")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload open pages when the archive changes")
	rootCmd.AddCommand(serveCmd)
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"modem-rotatord/internal/adapter/actuator"
	"modem-rotatord/internal/adapter/infrastructure/command"
	infraDhcp "modem-rotatord/internal/adapter/infrastructure/dhcp"
	"modem-rotatord/internal/adapter/infrastructure/file"
	"modem-rotatord/internal/adapter/infrastructure/network"
	"modem-rotatord/internal/adapter/infrastructure/probe"
	"modem-rotatord/internal/adapter/rotation"
	"modem-rotatord/internal/adapter/status"
	"modem-rotatord/internal/adapter/usb"
	"modem-rotatord/internal/pkg/config"
	"modem-rotatord/internal/pkg/logging"
	"modem-rotatord/internal/server"

	"github.com/spf13/cobra"
)

var (
	configFlag string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the modem rotation HTTP service",
	Run: func(cmd *cobra.Command, args []string) {
		// Load and validate configuration
		cfg, err := config.Load(configFlag)
		if err != nil {
			fmt.Printf("Config error: %v\n", err)
			return
		}

		if err := cfg.Validate(); err != nil {
			fmt.Printf("Config validation error: %v\n", err)
			return
		}

		// Initialize logging
		logging.InitLogger(cfg.Logging)

		logger := logging.GetLogger()
		logger.WithField("config_file", configFlag).Info("Starting daemon")

		// Create context for graceful shutdown
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigChan
			logger.WithField("signal", sig.String()).Info("Received shutdown signal")
			cancel()
		}()

		// Wire infrastructure adapters into the rotation core
		runner := command.NewRunner()
		networkMgr := network.NewManagerAdapter()
		fileMgr := file.NewManagerAdapter()
		prober := probe.NewPinger()
		dhcpClient := infraDhcp.NewClientAdapter()
		locator := usb.NewLocator(fileMgr, runner)

		selector := actuator.NewSelector(cfg, runner, networkMgr, fileMgr, dhcpClient, locator)
		reader := status.NewReader(cfg, networkMgr, prober)
		controller := rotation.NewController(cfg, selector, reader)

		logger.WithField("interface", cfg.Modem.Interface).Info("Rotation controller ready")

		srv := server.New(cfg, controller)
		if err := srv.Run(ctx); err != nil {
			logger.WithError(err).Error("HTTP server failed")
			return
		}
		logger.Info("Daemon stopped")
	},
}

func init() {
	serveCmd.Flags().StringVarP(&configFlag, "config", "f", "", "Path to config file (YAML); defaults apply when omitted")
	rootCmd.AddCommand(serveCmd)
}

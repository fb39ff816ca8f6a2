package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dbrecon/dbrecon/agent"
	"github.com/dbrecon/dbrecon/api"
	"github.com/dbrecon/dbrecon/config"
	"github.com/dbrecon/dbrecon/logger"
	"github.com/dbrecon/dbrecon/metrics"
)

// newAgentCommand creates the command that runs the long-lived job agent.
func newAgentCommand() *cobra.Command {
	var configPath string
	var snapshotPath string

	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Run the job agent against a control plane",
		Long: `The agent authenticates to the control plane with its agent key, polls
for pending jobs (connection tests, metadata fetches, comparisons), executes
them one at a time, and reports results back. A heartbeat with capacity and
system metrics runs on its own timer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runAgent(cfg, snapshotPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "agent.yaml", "Path to the agent config file")
	cmd.Flags().StringVar(&snapshotPath, "heartbeat-file", "", "Optional file for the last heartbeat snapshot")
	return cmd
}

func runAgent(cfg *config.Config, snapshotPath string) error {
	log := logger.GetLogger()

	client := agent.NewClient(cfg.ControlPlane.URL, cfg.ControlPlane.AgentKey)
	opts := agent.Options{
		PollInterval:      cfg.ControlPlane.PollInterval,
		HeartbeatInterval: cfg.ControlPlane.HeartbeatInterval,
	}
	if snapshotPath != "" {
		opts.SnapshotStore = &metrics.JSONSnapshotStore{FilePath: snapshotPath}
	}
	a := agent.NewAgent(client, opts)

	server := api.NewServer(api.ServerOptions{Port: cfg.API.Port, Agent: a})
	go func() {
		if err := server.Start(); err != nil {
			log.Error("Status server stopped", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = a.Run(ctx) }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Received shutdown signal, stopping agent")
	cancel()
	if err := server.Shutdown(); err != nil {
		log.Error("Error shutting down status server", zap.Error(err))
	}
	return nil
}

package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/quizmcp/agent"
	"github.com/quizmcp/config"
	"github.com/spf13/cobra"
)

var (
	launchCmd = &cobra.Command{
		Use:   "launch",
		Short: "supervise a standalone tool agent",
		Long:  "Runs the agent under a supervisor that restarts it after crashes. Useful when the agent should outlive individual server processes.",
		Run:   runLaunchCmd,
	}
)

func init() {
	rootCmd.AddCommand(launchCmd)
}

func runLaunchCmd(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	command, cmdArgs := cfg.AgentCommand()
	l := agent.NewLauncher(command, cmdArgs)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		l.Stop()
	}()

	if err := l.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

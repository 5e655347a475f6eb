package cmd

import (
	"log"

	"github.com/quizmcp/agent"
	"github.com/quizmcp/config"
	"github.com/quizmcp/models"
	"github.com/quizmcp/progress"
	"github.com/quizmcp/tools"
	"github.com/spf13/cobra"
)

var (
	agentCmd = &cobra.Command{
		Use:   "agent",
		Short: "run the stdio tool agent",
		Long:  "Serves the quiz tools as newline-delimited JSON-RPC on stdin/stdout. Normally spawned by the server, but can run standalone for debugging.",
		Run:   runAgentCmd,
	}
)

func init() {
	rootCmd.AddCommand(agentCmd)
}

func runAgentCmd(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	reg := tools.NewRegistry(models.ProviderQuery(cfg.Provider), progress.NewStore())
	if err := agent.Serve(reg); err != nil {
		log.Fatal(err)
	}
}

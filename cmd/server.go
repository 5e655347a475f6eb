package cmd

import (
	"log"

	"github.com/quizmcp/config"
	"github.com/quizmcp/coordinator"
	"github.com/quizmcp/handlers"
	"github.com/quizmcp/models"
	"github.com/quizmcp/progress"
	"github.com/quizmcp/server"
	"github.com/quizmcp/tools"
	"github.com/spf13/cobra"
)

var (
	serverCmd = &cobra.Command{
		Use:   "server",
		Short: "start the quiz web server",
		Run:   runServerCmd,
	}
)

func init() {
	rootCmd.AddCommand(serverCmd)
}

func runServerCmd(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	store := progress.NewStore()
	reg := tools.NewRegistry(models.ProviderQuery(cfg.Provider), store)
	coord := coordinator.New(coordinator.Select(cfg, reg))

	api := handlers.NewAPI(coord, cfg.Provider)
	s := server.NewServer(cfg.HTTPAddr, server.SetupRoutes(api, handlers.MCPHandler(reg)), coord)
	s.Run()
}

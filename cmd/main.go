package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"modelvault/config"
	"modelvault/server"
)

type App struct {
	envFile string
}

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP upload service",
		Args:  cobra.NoArgs,
		RunE:  app.handleServe,
	}
}

func newModelsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "Print every stored file, one path per line",
		Args:  cobra.NoArgs,
		RunE:  app.handleModels,
	}
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "modelvault",
		Short:        "Project and 3D model upload service",
		Args:         cobra.NoArgs,
		RunE:         app.handleServe,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&app.envFile, "env", ".env", "path to the env file")
	cmd.AddCommand(
		newServeCmd(app),
		newModelsCmd(app),
	)
	return cmd
}

func (a *App) handleServe(cmd *cobra.Command, args []string) error {
	return server.Run(a.envFile)
}

func (a *App) handleModels(cmd *cobra.Command, args []string) error {
	cfg, err := config.Get(a.envFile)
	if err != nil {
		return err
	}

	fm, err := server.NewFileLister(cfg)
	if err != nil {
		return err
	}

	files, err := fm.ListFiles(cmd.Context())
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Fprintln(cmd.OutOrStdout(), f)
	}
	return nil
}

func main() {
	if err := newRootCmd(&App{}).Execute(); err != nil {
		os.Exit(1)
	}
}

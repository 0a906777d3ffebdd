package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/format37/biographer/internal/app"
	"github.com/format37/biographer/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

func main() {
	var configPath string
	var dataDir string

	root := &cobra.Command{
		Use:     "biographer",
		Short:   "Digital Biographer - a local journaling companion",
		Long:    "Digital Biographer keeps private, local journaling conversations with an Ollama-served model.\nSessions are stored as plain JSON files on this machine.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			biographer, err := buildBiographer(configPath, dataDir)
			if err != nil {
				return err
			}
			cfg := biographer.Config

			// The original tests the model connection before serving the UI.
			client := biographer.Client.(*app.OllamaClient)
			if err := client.Ping(context.Background()); err != nil {
				return fmt.Errorf("%s", renderError(cfg.ErrorMessages.OllamaConnection, err))
			}
			biographer.Logger.Info("connected", map[string]interface{}{"model": cfg.Model.Name})
			fmt.Println(renderConsole(cfg.ConsoleMessages.Connected, cfg.Model.Name))
			fmt.Println(renderConsole(cfg.ConsoleMessages.Launching, cfg.Model.Name))

			p := tea.NewProgram(tui.New(biographer), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the configuration file")
	root.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "override the data directory")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Print the stored conversation summary and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			biographer, err := buildBiographer(configPath, dataDir)
			if err != nil {
				return err
			}
			fmt.Println(biographer.DataInfo())
			return nil
		},
	}
	root.AddCommand(stats)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func buildBiographer(configPath, dataDir string) (*app.Biographer, error) {
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	logger := app.NewLogger(app.DefaultLogWriter())
	client := app.NewOllamaClient(cfg.Model.BaseURL, cfg.Model.Name)
	return app.NewBiographer(cfg, client, logger)
}

func renderConsole(tmpl, model string) string {
	return strings.ReplaceAll(tmpl, "{model}", model)
}

func renderError(tmpl string, err error) string {
	return strings.ReplaceAll(tmpl, "{error}", err.Error())
}

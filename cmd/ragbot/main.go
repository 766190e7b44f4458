package main

import (
	"github.com/spf13/cobra"

	"github.com/vinhuni-its/ragbot/cli/chat"
	"github.com/vinhuni-its/ragbot/cli/collections"
	"github.com/vinhuni-its/ragbot/cli/documents"
	"github.com/vinhuni-its/ragbot/cli/elearn"
	"github.com/vinhuni-its/ragbot/cli/login"
	"github.com/vinhuni-its/ragbot/cli/retrieve"
	"github.com/vinhuni-its/ragbot/cli/settings"
	"github.com/vinhuni-its/ragbot/internal/configuration"
)

const configFilepath = "~/.ragbot/config.json"

var rootCmd = &cobra.Command{
	Use:     "ragbot",
	Short:   "Terminal client for the Vinh University RAG assistant",
	Version: "1.0",
}

func main() {
	config, err := configuration.Parse(configFilepath)
	if err != nil {
		panic(err)
	}

	rootCmd.AddCommand(chat.NewCmd(config))
	rootCmd.AddCommand(elearn.NewCmd(config))
	rootCmd.AddCommand(collections.NewCmd(config))
	rootCmd.AddCommand(documents.NewCmd(config))
	rootCmd.AddCommand(retrieve.NewCmd(config))
	rootCmd.AddCommand(settings.NewCmd(config))
	rootCmd.AddCommand(login.NewLoginCmd())
	rootCmd.AddCommand(login.NewLogoutCmd())
	rootCmd.AddCommand(login.NewWhoamiCmd())
	rootCmd.Execute()
}

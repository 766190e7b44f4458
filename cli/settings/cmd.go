// Package settings implements the connection settings commands.
package settings

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vinhuni-its/ragbot/internal/api"
	"github.com/vinhuni-its/ragbot/internal/cli"
	"github.com/vinhuni-its/ragbot/internal/configuration"
)

// NewCmd instantiates and returns the settings command.
func NewCmd(config *configuration.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and change the API connection settings",
	}
	cmd.AddCommand(newShowCmd(config))
	cmd.AddCommand(newSetURLCmd(config))
	cmd.AddCommand(newSetKeyCmd(config))
	cmd.AddCommand(newHealthCmd(config))
	return cmd
}

func newShowCmd(config *configuration.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active settings",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli.Title("Settings")
			cli.Field("API URL", config.APIURL)
			key := "(not set)"
			if config.APIKey != "" {
				key = strings.Repeat("*", 8)
			}
			cli.Field("API key", key)
			cli.Field("Request timeout", config.RequestTimeout)
			cli.Field("Chat model", config.Chat.Model)
			cli.Field("Vision model", config.Elearning.VisionModel)
			cli.Field("History window", config.Chat.HistoryWindow)
			return nil
		},
	}
}

func newSetURLCmd(config *configuration.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "set-url <url>",
		Short: "Set the API base URL (normalized to end in /api)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.New(config)
			if err := client.UpdateAPIURL(cmd.Context(), args[0]); err != nil {
				return err
			}
			cli.Field("API URL", client.BaseURL())
			if client.IsConnected() {
				cli.Success("Kết nối thành công.")
			} else {
				cli.Error("Không thể kết nối tới máy chủ.")
			}
			return nil
		},
	}
}

func newSetKeyCmd(config *configuration.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "set-key <key>",
		Short: "Set the API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.New(config)
			if err := client.UpdateAPIKey(args[0]); err != nil {
				return err
			}
			cli.Success("Đã lưu API key.")
			return nil
		},
	}
}

func newHealthCmd(config *configuration.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check connectivity to the API",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.New(config)
			if client.CheckConnection(cmd.Context()) {
				cli.Success("Máy chủ hoạt động bình thường (%s).", client.BaseURL())
				return nil
			}
			cli.Error("Không thể kết nối tới %s.", client.BaseURL())
			return nil
		},
	}
}

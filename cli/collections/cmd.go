// Package collections implements the collection management commands.
package collections

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/vinhuni-its/ragbot/internal/api"
	"github.com/vinhuni-its/ragbot/internal/auth"
	"github.com/vinhuni-its/ragbot/internal/cli"
	"github.com/vinhuni-its/ragbot/internal/configuration"
)

// NewCmd instantiates and returns the collections command.
func NewCmd(config *configuration.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collections",
		Short: "List document collections",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, err := auth.RequireLogin(auth.DefaultSessionPath)
			cobra.CheckErr(err)

			client := api.New(config)
			collections, err := client.GetCollections(ctx)
			cobra.CheckErr(err)

			cli.Title("Collections")
			if len(collections) == 0 {
				cli.Muted("Không có collection nào.")
				return nil
			}
			for _, collection := range collections {
				name := collection.Name
				if collection.DisplayName != "" {
					name = fmt.Sprintf("%s (%s)", collection.DisplayName, collection.Name)
				}
				cli.Field(name, fmt.Sprintf("%d tài liệu", collection.DocumentCount))
			}
			return nil
		},
	}
	cmd.AddCommand(newRawCmd(config))
	cmd.AddCommand(newDeleteCmd(config))
	return cmd
}

func newRawCmd(config *configuration.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "raw",
		Short: "List collections straight from the vector store",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, err := auth.RequireAdmin(auth.DefaultSessionPath)
			cobra.CheckErr(err)

			client := api.New(config)
			collections, err := client.GetRawCollections(ctx)
			cobra.CheckErr(err)

			cli.Title("Raw collections")
			for _, collection := range collections {
				cli.Field(collection.Name, fmt.Sprintf("%d vectors", collection.VectorsCount))
			}
			return nil
		},
	}
}

func newDeleteCmd(config *configuration.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a collection and all its documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, err := auth.RequireAdmin(auth.DefaultSessionPath)
			cobra.CheckErr(err)
			name := args[0]

			confirmed := false
			prompt := &survey.Confirm{
				Message: fmt.Sprintf("Xóa collection %q và toàn bộ tài liệu của nó?", name),
			}
			if err := survey.AskOne(prompt, &confirmed); err != nil {
				return err
			}
			if !confirmed {
				cli.Muted("Đã hủy.")
				return nil
			}

			client := api.New(config)
			if err := client.DeleteCollection(ctx, name); err != nil {
				return err
			}
			cli.Success("Đã xóa collection %s.", name)
			return nil
		},
	}
}

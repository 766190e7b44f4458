// Package chat implements the general Q&A chat command.
package chat

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vinhuni-its/ragbot/internal/api"
	"github.com/vinhuni-its/ragbot/internal/auth"
	"github.com/vinhuni-its/ragbot/internal/configuration"
	"github.com/vinhuni-its/ragbot/internal/session"
)

// NewCmd instantiates and returns the chat command.
func NewCmd(config *configuration.Config) *cobra.Command {
	var opts struct {
		Collections []string
	}
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the university assistant",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			_, err := auth.RequireLogin(auth.DefaultSessionPath)
			cobra.CheckErr(err)

			client := api.New(config)
			client.CheckConnection(ctx)

			// All collections are in scope unless the user narrowed them.
			collections := opts.Collections
			if len(collections) == 0 {
				if fetched, err := client.GetCollections(ctx); err == nil {
					for _, collection := range fetched {
						collections = append(collections, collection.Name)
					}
				}
			}

			m, err := session.New(ctx, session.VariantGeneral, session.Options{
				Config:      config,
				Client:      client,
				Collections: collections,
			})
			if err != nil {
				return err
			}

			p := tea.NewProgram(
				m,
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithReportFocus(),
			)
			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().StringSliceVar(&opts.Collections, "collections", nil, "restrict retrieval to these collections")
	return cmd
}

// Package retrieve implements raw document retrieval without generation.
package retrieve

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vinhuni-its/ragbot/internal/api"
	"github.com/vinhuni-its/ragbot/internal/auth"
	"github.com/vinhuni-its/ragbot/internal/cli"
	"github.com/vinhuni-its/ragbot/internal/configuration"
)

// NewCmd instantiates and returns the retrieve command.
func NewCmd(config *configuration.Config) *cobra.Command {
	var opts struct {
		Collections []string
		TopK        int
	}
	cmd := &cobra.Command{
		Use:   "retrieve <query>",
		Short: "Retrieve matching document chunks without generation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, err := auth.RequireLogin(auth.DefaultSessionPath)
			cobra.CheckErr(err)

			client := api.New(config)
			documents, err := client.RetrieveDocuments(ctx, &api.RetrieveRequest{
				Query:           strings.Join(args, " "),
				CollectionNames: opts.Collections,
				TopK:            opts.TopK,
			})
			cobra.CheckErr(err)

			cli.Title("Retrieved %d documents", len(documents))
			for i, document := range documents {
				cli.Separator()
				cli.Field(fmt.Sprintf("#%d", i+1), fmt.Sprintf("score %.4f", document.Score))
				if filename := document.Metadata["original_filename"]; filename != "" {
					cli.Muted("  %s", filename)
				}
				fmt.Println(document.Text)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&opts.Collections, "collections", nil, "restrict retrieval to these collections")
	cmd.Flags().IntVar(&opts.TopK, "top-k", config.Chat.TopK, "number of chunks to retrieve")
	return cmd
}

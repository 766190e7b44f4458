// Package documents implements the admin document management commands.
package documents

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/vinhuni-its/ragbot/internal/api"
	"github.com/vinhuni-its/ragbot/internal/auth"
	"github.com/vinhuni-its/ragbot/internal/cli"
	"github.com/vinhuni-its/ragbot/internal/configuration"
)

// Upload defaults, matching the backend's chunking expectations.
const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 200
)

// NewCmd instantiates and returns the documents command.
func NewCmd(config *configuration.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "documents",
		Short: "Manage indexed documents",
	}
	cmd.AddCommand(newUploadCmd(config))
	cmd.AddCommand(newDeleteCmd(config))
	return cmd
}

func newUploadCmd(config *configuration.Config) *cobra.Command {
	var opts struct {
		Collection   string
		ChunkSize    int
		ChunkOverlap int
		DisplayName  string
		DocumentType string
		Department   string
		Description  string
	}
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a document for indexing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, err := auth.RequireAdmin(auth.DefaultSessionPath)
			cobra.CheckErr(err)

			path := args[0]
			file, err := os.Open(path)
			cobra.CheckErr(err)
			defer file.Close()

			filename := filepath.Base(path)
			if opts.DisplayName == "" {
				opts.DisplayName = strings.TrimSuffix(filename, filepath.Ext(filename))
			}
			if opts.DocumentType == "" || opts.Department == "" {
				return fmt.Errorf("--type and --department are required")
			}

			client := api.New(config)

			// Indexing happens server side with no progress feedback, so the
			// bar creeps to 90% on a timer and completes when the call returns.
			done := make(chan struct{})
			finished := make(chan struct{})
			go func() {
				defer close(finished)
				progress := 0
				ticker := time.NewTicker(500 * time.Millisecond)
				defer ticker.Stop()
				for {
					select {
					case <-done:
						fmt.Printf("\rUploading %s... 100%%\n", filename)
						return
					case <-ticker.C:
						if progress < 90 {
							progress += 10
						}
						fmt.Printf("\rUploading %s... %d%%", filename, progress)
					}
				}
			}()

			result, err := client.UploadDocument(ctx, filename, file, api.UploadOptions{
				CollectionName: opts.Collection,
				ChunkSize:      opts.ChunkSize,
				ChunkOverlap:   opts.ChunkOverlap,
				Metadata: map[string]string{
					"display_name":  opts.DisplayName,
					"document_type": opts.DocumentType,
					"department":    opts.Department,
					"description":   opts.Description,
				},
			})
			close(done)
			<-finished
			if err != nil {
				fmt.Println()
				return err
			}

			cli.Success("Đã tải lên %s (collection %s, trạng thái %s).", filename, result.CollectionName, result.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Collection, "collection", "", "target collection")
	cmd.Flags().IntVar(&opts.ChunkSize, "chunk-size", defaultChunkSize, "chunk size in characters")
	cmd.Flags().IntVar(&opts.ChunkOverlap, "chunk-overlap", defaultChunkOverlap, "chunk overlap in characters")
	cmd.Flags().StringVar(&opts.DisplayName, "display-name", "", "display name (defaults to the file name)")
	cmd.Flags().StringVar(&opts.DocumentType, "type", "", "document type")
	cmd.Flags().StringVar(&opts.Department, "department", "", "owning department")
	cmd.Flags().StringVar(&opts.Description, "description", "", "free-form description")
	return cmd
}

func newDeleteCmd(config *configuration.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an indexed document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, err := auth.RequireAdmin(auth.DefaultSessionPath)
			cobra.CheckErr(err)
			id := args[0]

			confirmed := false
			prompt := &survey.Confirm{
				Message: fmt.Sprintf("Xóa tài liệu %q?", id),
			}
			if err := survey.AskOne(prompt, &confirmed); err != nil {
				return err
			}
			if !confirmed {
				cli.Muted("Đã hủy.")
				return nil
			}

			client := api.New(config)
			if err := client.DeleteDocument(ctx, id); err != nil {
				return err
			}
			cli.Success("Đã xóa tài liệu %s.", id)
			return nil
		},
	}
}

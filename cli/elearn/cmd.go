// Package elearn implements the course-scoped e-learning assistant command.
package elearn

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vinhuni-its/ragbot/internal/api"
	"github.com/vinhuni-its/ragbot/internal/auth"
	"github.com/vinhuni-its/ragbot/internal/configuration"
	"github.com/vinhuni-its/ragbot/internal/course"
	"github.com/vinhuni-its/ragbot/internal/session"
)

// NewCmd instantiates and returns the elearn command.
func NewCmd(config *configuration.Config) *cobra.Command {
	var opts struct {
		Course string
	}
	cmd := &cobra.Command{
		Use:   "elearn",
		Short: "Chat with the learning assistant of a course",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			_, err := auth.RequireLogin(auth.DefaultSessionPath)
			cobra.CheckErr(err)

			selected, err := pickCourse(opts.Course)
			cobra.CheckErr(err)

			client := api.New(config)
			client.CheckConnection(ctx)

			m, err := session.New(ctx, session.VariantCourse, session.Options{
				Config: config,
				Client: client,
				Course: selected,
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
	cmd.Flags().StringVar(&opts.Course, "course", "", "course id or code (prompted when omitted)")
	return cmd
}

func pickCourse(id string) (*course.Course, error) {
	if id != "" {
		selected, ok := course.Find(id)
		if !ok {
			return nil, errors.Errorf("unknown course %q", id)
		}
		return selected, nil
	}

	courses, err := course.Catalog()
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(courses))
	for i, c := range courses {
		labels[i] = fmt.Sprintf("%s - %s", c.Code, c.Title)
	}
	var index int
	prompt := &survey.Select{
		Message: "Chọn môn học:",
		Options: labels,
	}
	if err := survey.AskOne(prompt, &index); err != nil {
		return nil, errors.Wrap(err, "selecting course")
	}
	return &courses[index], nil
}

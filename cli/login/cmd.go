// Package login implements the portal session commands.
package login

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/vinhuni-its/ragbot/internal/auth"
	"github.com/vinhuni-its/ragbot/internal/cli"
)

// NewLoginCmd instantiates and returns the login command.
func NewLoginCmd() *cobra.Command {
	var opts struct {
		Username string
	}
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log into the portal",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := opts.Username
			if username == "" {
				if err := survey.AskOne(&survey.Input{Message: "Tên đăng nhập:"}, &username); err != nil {
					return err
				}
			}
			var password string
			if err := survey.AskOne(&survey.Password{Message: "Mật khẩu:"}, &password); err != nil {
				return err
			}

			session, err := auth.Login(auth.DefaultSessionPath, username, password)
			if err != nil {
				return err
			}
			cli.Success("Xin chào %s (%s).", session.Name, session.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Username, "username", "", "username (prompted when omitted)")
	return cmd
}

// NewLogoutCmd instantiates and returns the logout command.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the portal session",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := auth.Logout(auth.DefaultSessionPath); err != nil {
				return err
			}
			cli.Success("Đã đăng xuất.")
			return nil
		},
	}
}

// NewWhoamiCmd instantiates and returns the whoami command.
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current portal session",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := auth.RequireLogin(auth.DefaultSessionPath)
			if err != nil {
				return err
			}
			cli.Field("Người dùng", session.Name)
			cli.Field("Tài khoản", session.Username)
			cli.Field("Vai trò", session.Role)
			cli.Field("Cổng", session.Portal)
			return nil
		},
	}
}

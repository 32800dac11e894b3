package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/app"
)

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:     "login",
		Short:   "Log in and remember the session",
		Example: `  adcraft login --email admin@demo.com --password password123`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.app.Login(cmd.Context(), email, password)
			if err != nil {
				return errors.New(app.AlertText(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", res.Identity)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the remembered session",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok := c.app.Session.RestoreSession()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

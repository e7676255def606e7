package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/studio/internal/clipboard"
	"github.com/nikbrunner/studio/internal/model"
)

func loginCmd() *cobra.Command {
	var (
		idToken  string
		username string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with an identity provider ID token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(idToken) == "" {
				idToken = os.Getenv("STUDIO_ID_TOKEN")
			}
			if strings.TrimSpace(idToken) == "" {
				return fmt.Errorf("an ID token is required (--id-token or STUDIO_ID_TOKEN)")
			}

			a, err := openApp(cmd.Context(), clipboard.Unsupported{})
			if err != nil {
				return err
			}
			defer a.Close()

			if username != "" {
				if err := a.sync.SetDraftUsername(cmd.Context(), strings.TrimSpace(username)); err != nil {
					return fmt.Errorf("remember username: %w", err)
				}
			}
			if err := a.sync.SignIn(cmd.Context(), idToken); err != nil {
				return failure(err, "Login failed")
			}

			user := a.sync.Snapshot().Session.User
			fmt.Printf("Signed in as @%s\n", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&idToken, "id-token", "", "ID token from the identity provider")
	cmd.Flags().StringVarP(&username, "username", "u", "", "username to request")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), clipboard.Unsupported{})
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.sync.SignOut(cmd.Context()); err != nil {
				return fmt.Errorf("sign out: %w", err)
			}
			fmt.Println("Signed out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), clipboard.Unsupported{})
			if err != nil {
				return err
			}
			defer a.Close()

			snap := a.sync.Snapshot()
			session := snap.Session
			if session.User == nil {
				fmt.Println(session.StatusText())
				if session.Err != "" {
					fmt.Println(session.Err)
				}
				fmt.Printf("Next sign-in requests @%s\n", snap.DraftUsername)
				return nil
			}

			u := session.User
			fmt.Printf("%s  %s (@%s)\n", model.Initials(u.Name, u.Username), u.Name, u.Username)
			if u.Email != "" {
				fmt.Println(u.Email)
			}
			fmt.Println(session.StatusText())
			return nil
		},
	}
}

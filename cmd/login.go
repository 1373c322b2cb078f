package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/bitacora/internal/credentials"
	"github.com/Tiliavir/bitacora/internal/logger"
)

var loginToken string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the daily_tasks API token in the OS keyring",
	Long: `Store the daily_tasks API token in the OS keyring.
Pass it with --token or pipe it on stdin.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func init() {
	loginCmd.Flags().StringVar(&loginToken, "token", "", "API token")
}

func runLogin(cmd *cobra.Command, args []string) error {
	tok := loginToken
	if tok == "" {
		fmt.Fprint(cmd.ErrOrStderr(), "API token: ")
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("reading token: %w", err)
		}
		tok = strings.TrimSpace(line)
	}
	if err := credentials.SetToken(tok); err != nil {
		return err
	}
	logger.Info("api token stored in keyring")
	fmt.Fprintln(cmd.OutOrStdout(), "Token saved.")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	err := credentials.DeleteToken()
	if errors.Is(err, credentials.ErrNotFound) {
		fmt.Fprintln(cmd.OutOrStdout(), "No token stored.")
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("api token removed from keyring")
	fmt.Fprintln(cmd.OutOrStdout(), "Token removed.")
	return nil
}

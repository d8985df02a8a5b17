package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for mmotopvote.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mmotopvote",
		Short: "Automated daily voting on the mmotop.ru server rating",
		Long: `mmotopvote casts a daily vote for a game server on mmotop.ru.

It drives a Chrome browser to log in, solve the slider challenge, pass the
embedded verification widget, and submit the ballot. When an earlier vote
is still in effect, it reports the remaining time instead of voting.

Credentials are read from the environment (mmotop_login, mmotop_password,
sirus_account_name) or a .env file in the current directory.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewVoteCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

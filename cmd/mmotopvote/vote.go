package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mmotop-tools/mmotopvote/internal/browser"
	"github.com/mmotop-tools/mmotopvote/internal/config"
	"github.com/mmotop-tools/mmotopvote/internal/database"
	"github.com/mmotop-tools/mmotopvote/internal/log"
	"github.com/mmotop-tools/mmotopvote/internal/model"
	"github.com/mmotop-tools/mmotopvote/internal/page"
	"github.com/mmotop-tools/mmotopvote/internal/workflow"
)

// NewVoteCmd creates the vote command.
func NewVoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vote",
		Short: "Cast a vote on the mmotop.ru server rating",
		Long: `Vote opens the voting page, logs in, and casts a vote for the
configured realm.

When an earlier vote is still in effect, the site shows a countdown and no
vote is cast; the remaining time is logged and recorded instead. When the
embedded verification widget stays unsolved, the run still finishes and
records that outcome.

Credentials come from the environment or a .env file in the current
directory:
  mmotop_login        login e-mail for mmotop.ru
  mmotop_password     password for mmotop.ru
  sirus_account_name  game account name entered on the ballot

Examples:
  # Cast a vote with credentials from the environment
  mmotopvote vote

  # Vote for a different realm rate with a visible browser window
  mmotopvote vote --rate x5 --headless=false

  # Use a custom profile file
  mmotopvote vote -c myprofile.yaml`,
		Args: cobra.NoArgs,
		RunE: runVoteCmd,
	}

	cmd.Flags().StringP("url", "u", config.DefaultVoteURL,
		"Voting page URL")
	cmd.Flags().StringP("rate", "r", config.DefaultServerRate,
		"Realm rate label to vote for")
	cmd.Flags().StringP("account", "a", "",
		"Game account name (overrides sirus_account_name)")
	cmd.Flags().Bool("headless", true,
		"Run the browser without a visible window")
	cmd.Flags().DurationP("timeout", "t", config.DefaultRunTimeout,
		"Overall deadline for the voting run")
	cmd.Flags().StringP("config", "c", "",
		"Profile file path (default: .mmotopvote in current or home directory)")
	cmd.Flags().Bool("no-save", false,
		"Do not record the run in the history database")

	return cmd
}

// runVoteCmd executes the vote command.
func runVoteCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildVoteConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runVote(ctx, cfg, logger, cmd.OutOrStdout())
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildVoteConfig creates a Config from the environment, an optional
// profile file, and cobra flags. Flags win over the profile, which wins
// over the built-in defaults.
func buildVoteConfig(cmd *cobra.Command) (*config.Config, error) {
	// A .env file in the working directory is a convenience for manual
	// runs; a missing file is not an error.
	_ = godotenv.Load()

	cfg := config.NewConfig()

	var err error

	cfg.ProfilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a profile that doesn't exist,
	// error out; otherwise a missing profile is fine.
	explicitProfile := cfg.ProfilePath != ""
	profilePath := config.FindProfileFile(cfg.ProfilePath)
	if profilePath != "" {
		profile, err := config.LoadProfile(profilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load profile %s: %w", profilePath, err)
		}
		profile.Apply(cfg)
	} else if explicitProfile {
		return nil, fmt.Errorf("profile file not found: %s", cfg.ProfilePath)
	}

	if cmd.Flags().Changed("url") {
		if cfg.VoteURL, err = cmd.Flags().GetString("url"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("rate") {
		if cfg.ServerRate, err = cmd.Flags().GetString("rate"); err != nil {
			return nil, err
		}
	}
	if account, err := cmd.Flags().GetString("account"); err != nil {
		return nil, err
	} else if account != "" {
		cfg.AccountName = account
	}
	if cmd.Flags().Changed("headless") {
		if cfg.Headless, err = cmd.Flags().GetBool("headless"); err != nil {
			return nil, err
		}
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave
	cfg.DBDir = config.XDGDataDir()
	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// runVote executes the voting run and records the result.
func runVote(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) error {
	logger.Debug("browser configuration",
		"browser", cfg.Browser,
		"headless", cfg.Headless,
		"timeout", cfg.Timeout.String(),
	)

	session, err := browser.NewSession(ctx, browser.Options{
		Headless: cfg.Headless,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer session.Close()

	votePage := page.NewVotePage(session, logger)
	runner := workflow.NewRunner(cfg, votePage, workflow.WithLogger(logger))

	rec, runErr := runner.Run(ctx)

	// Persist the record even for failed runs; the history is how the
	// operator sees what went wrong later.
	if cfg.SaveToDB && rec != nil {
		saveRunRecord(cfg, rec, logger)
	}

	if runErr != nil {
		reportRunError(logger, runErr)
		return runErr
	}

	printOutcome(out, rec)
	return nil
}

// saveRunRecord writes the run record to the history database. Persistence
// failures are logged but never fail the run itself.
func saveRunRecord(cfg *config.Config, rec *model.RunRecord, logger *slog.Logger) {
	db, err := database.Open(cfg.DBDir, database.Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	})
	if err != nil {
		logger.Error("failed to open history database", "error", err)
		return
	}
	defer db.Close()

	// The run context may already be cancelled or expired; the save
	// should still go through.
	if err := db.SaveRun(context.Background(), rec); err != nil {
		logger.Error("failed to save run record", "id", rec.ID, "error", err)
		return
	}
	logger.Debug("run record saved", "id", rec.ID, "db", db.Path())
}

// reportRunError logs the failure according to its class. This is the only
// place the element error classes are interpreted; everything below just
// passes them up.
func reportRunError(logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, browser.ErrElementNotFound):
		logger.Error("element not found", "error", err)
	case errors.Is(err, browser.ErrTimeout):
		logger.Error("a timeout occurred", "error", err)
	case errors.Is(err, browser.ErrElementNotVisible):
		logger.Error("element not visible", "error", err)
	default:
		logger.Error("voting run failed", "error", err)
	}
}

// printOutcome prints a one-line result for successful runs.
func printOutcome(out io.Writer, rec *model.RunRecord) {
	switch rec.Outcome {
	case model.OutcomeVoted:
		fmt.Fprintf(out, "Vote submitted for %s (%s).\n", rec.AccountName, rec.ServerRate)
	case model.OutcomeAlreadyVoted:
		fmt.Fprintf(out, "Already voted; time remaining until next vote: %s\n", rec.Countdown)
	case model.OutcomeCaptchaUnsolved:
		fmt.Fprintln(out, "Captcha not solved; no vote was cast.")
	case model.OutcomeFailed:
		// Failed runs return an error instead of reaching here.
	}
}

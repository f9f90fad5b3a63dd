package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ybdev/birthdayd/internal/config"
	"github.com/ybdev/birthdayd/internal/engine"
	"github.com/ybdev/birthdayd/internal/notify"
	"github.com/ybdev/birthdayd/internal/store"
)

var checkHour int

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one matching cycle immediately",
	Long:  "Evaluate the rules due at the current hour (or --hour) against today's date and dispatch any matching reminders, then exit.",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().IntVar(&checkHour, "hour", -1, "Evaluate rules for this hour instead of the current one (0-23)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve db path: %w", err)
		}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	now := time.Now()
	if checkHour >= 0 {
		if checkHour > 23 {
			return fmt.Errorf("--hour must be between 0 and 23")
		}
		now = time.Date(now.Year(), now.Month(), now.Day(), checkHour, 0, 0, 0, now.Location())
	}

	mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailAddress, cfg.EmailPassword, logger)
	eng := engine.New(db, mailer, logger)
	eng.RunTick(context.Background(), now)

	return nil
}

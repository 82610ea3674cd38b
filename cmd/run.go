package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/examdrill/examdrill/internal/app"
	"github.com/examdrill/examdrill/internal/bank"
	"github.com/examdrill/examdrill/internal/store"
)

// runApp opens the store, loads the question bank, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	v := viperForCmd(cmd)

	dbPath, err := resolveDBPath(v)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	bankPath := resolveBankPath(v)
	b, err := bank.Load(bankPath)
	if err != nil {
		return fmt.Errorf("load questions from %s: %w", bankPath, err)
	}

	return app.Run(app.Options{
		Bank:      b,
		Sessions:  st.SessionRepo(),
		Missed:    st.MissedRepo(),
		Flagged:   st.FlaggedRepo(),
		Threshold: v.GetInt("threshold"),
	})
}

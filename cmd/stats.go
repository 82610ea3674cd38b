package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/examdrill/examdrill/internal/bank"
	"github.com/examdrill/examdrill/internal/quiz"
	"github.com/examdrill/examdrill/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show question bank and progress statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
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
		if b, err := bank.Load(bankPath); err == nil {
			fmt.Printf("Questions:  %d (%s)\n", b.Len(), bankPath)
		} else {
			fmt.Printf("Questions:  unavailable (%v)\n", err)
		}

		ctx := cmd.Context()
		missed, err := st.MissedRepo().Load(ctx)
		if err != nil {
			return err
		}
		flagged, err := st.FlaggedRepo().Load(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Missed:     %d\n", len(missed))
		fmt.Printf("Flagged:    %d\n", len(flagged))

		sess, err := st.SessionRepo().Load(ctx)
		switch {
		case errors.Is(err, store.ErrNotFound):
			fmt.Println("Session:    none")
		case err != nil:
			return err
		case sess.Finished():
			threshold := v.GetInt("threshold")
			if threshold <= 0 {
				threshold = quiz.DefaultPassThreshold
			}
			sum := sess.Summarize(threshold)
			fmt.Printf("Session:    finished %s, %d/%d correct (%d%%)\n",
				sess.Mode, sum.Correct, sum.Total, sum.Percent)
		default:
			fmt.Printf("Session:    %s in progress, question %d of %d\n",
				sess.Mode, sess.Index+1, sess.Len())
		}
		if err == nil {
			fmt.Printf("Attempt:    %s\n", sess.ID)
		}

		return nil
	},
}

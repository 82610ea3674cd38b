package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/examdrill/examdrill/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase the saved session, missed set, and flags",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viperForCmd(cmd)
		yes, _ := cmd.Flags().GetBool("yes")

		if !yes {
			fmt.Print("Erase the saved session, missed set, and flags? [y/N] ")
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		dbPath, err := resolveDBPath(v)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		if err := st.SessionRepo().Clear(ctx); err != nil {
			return err
		}
		if err := st.MissedRepo().Clear(ctx); err != nil {
			return err
		}
		if err := st.FlaggedRepo().Clear(ctx); err != nil {
			return err
		}

		fmt.Println("All data erased.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}

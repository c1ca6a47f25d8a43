package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/tonimelisma/notesync-go/internal/store"
)

var flagClearStateYes bool

func newClearStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear-state",
		Short: "Wipe all sync records, category mappings, and audit log entries",
		Long: `Resets the sync-state store to empty. The next sync run treats every
Device and Host task as new and re-pairs them from scratch by title and
content hash. This does not touch tasks on either Device or Host.`,
		RunE: runClearState,
	}

	cmd.Flags().BoolVar(&flagClearStateYes, "yes", false, "skip the confirmation prompt")

	return cmd
}

func runClearState(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())
	ctx := cmd.Context()

	if !flagClearStateYes && !confirmClearState() {
		fmt.Println("Aborted.")
		return nil
	}

	st, err := store.Open(ctx, cc.Cfg.Sync.StatePath, cc.Logger)
	if err != nil {
		return fmt.Errorf("opening sync-state store: %w", err)
	}
	defer st.Close()

	if err := st.ClearAll(ctx); err != nil {
		return fmt.Errorf("clearing sync state: %w", err)
	}

	fmt.Println("Sync state cleared.")

	return nil
}

func confirmClearState() bool {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		fmt.Println("stdin is not a terminal; pass --yes to confirm non-interactively.")
		return false
	}

	fmt.Print("This will erase all sync pairings and history. Continue? [y/N] ")

	reader := bufio.NewReader(os.Stdin)

	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))

	return answer == "y" || answer == "yes"
}

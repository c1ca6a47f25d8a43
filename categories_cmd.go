package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/notesync-go/internal/store"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List known category/list mappings between Device and Host",
		RunE:  runCategories,
	}
}

type categoryRow struct {
	DeviceID string `json:"device_id"`
	HostID   string `json:"host_id"`
	Name     string `json:"name"`
}

func runCategories(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())
	ctx := cmd.Context()

	st, err := store.Open(ctx, cc.Cfg.Sync.StatePath, cc.Logger)
	if err != nil {
		return fmt.Errorf("opening sync-state store: %w", err)
	}
	defer st.Close()

	mappings, err := st.AllCategories(ctx)
	if err != nil {
		return fmt.Errorf("loading category mappings: %w", err)
	}

	rows := make([]categoryRow, 0, len(mappings))
	for _, m := range mappings {
		rows = append(rows, categoryRow{DeviceID: m.DeviceID, HostID: m.HostID, Name: m.Name})
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Println("No category mappings recorded yet — run `sync` to bootstrap them.")
		return nil
	}

	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{r.Name, r.DeviceID, r.HostID})
	}

	printTable(os.Stdout, []string{"NAME", "DEVICE_ID", "HOST_ID"}, tableRows)

	return nil
}

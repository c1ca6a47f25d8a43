package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/notesync-go/internal/store"
)

// defaultStatusLogLimit bounds how many recent audit-log rows status prints.
const defaultStatusLogLimit = 10

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sync-state store statistics and recent activity",
		Long: `Display how many tasks are paired on both sides, Host-only, or
Device-only, plus a tail of the most recent audit-log entries.`,
		RunE: runStatus,
	}
}

type statusReport struct {
	HostOnly   int              `json:"host_only"`
	DeviceOnly int              `json:"device_only"`
	Both       int              `json:"both"`
	Recent     []statusLogEntry `json:"recent_activity"`
}

type statusLogEntry struct {
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	SyncID    string `json:"sync_id,omitempty"`
	Details   string `json:"details,omitempty"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())
	ctx := cmd.Context()

	st, err := store.Open(ctx, cc.Cfg.Sync.StatePath, cc.Logger)
	if err != nil {
		return fmt.Errorf("opening sync-state store: %w", err)
	}
	defer st.Close()

	stats, err := st.Stats(ctx)
	if err != nil {
		return fmt.Errorf("loading stats: %w", err)
	}

	logs, err := st.RecentLogs(ctx, defaultStatusLogLimit)
	if err != nil {
		return fmt.Errorf("loading recent logs: %w", err)
	}

	report := statusReport{HostOnly: stats.HostOnly, DeviceOnly: stats.DeviceOnly, Both: stats.Both}
	for _, entry := range logs {
		report.Recent = append(report.Recent, statusLogEntry{
			Timestamp: formatTime(time.Unix(entry.TimestampSec, 0)),
			Action:    entry.Action,
			SyncID:    entry.SyncID,
			Details:   entry.DetailsJSON,
		})
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(report)
	}

	printStatusText(report)

	return nil
}

func printStatusText(r statusReport) {
	fmt.Printf("Sync-state store:\n")
	fmt.Printf("  paired (both):  %d\n", r.Both)
	fmt.Printf("  host only:      %d\n", r.HostOnly)
	fmt.Printf("  device only:    %d\n", r.DeviceOnly)
	fmt.Println()

	if len(r.Recent) == 0 {
		fmt.Println("No recent activity.")
		return
	}

	fmt.Println("Recent activity:")

	rows := make([][]string, 0, len(r.Recent))
	for _, e := range r.Recent {
		rows = append(rows, []string{e.Timestamp, e.Action, e.SyncID})
	}

	printTable(os.Stdout, []string{"TIME", "ACTION", "SYNC_ID"}, rows)
}

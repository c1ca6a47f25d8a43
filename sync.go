package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/notesync-go/internal/store"
	"github.com/tonimelisma/notesync-go/internal/sync"
)

var flagDryRun bool

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one sync pass between Device and Host",
		Long: `Run one synchronous sync pass: category reconciliation, task fetch,
deduplication, pairing, conflict resolution, and action execution.

Exits 0 if the run completed with no per-action errors, 1 otherwise.`,
		RunE: runSync,
	}

	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "report what would change without mutating either store")

	return cmd
}

func runSync(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())

	result, err := doSync(cmd.Context(), cc)
	if err != nil {
		return err
	}

	if flagJSON {
		if err := printSyncJSON(os.Stdout, result); err != nil {
			return err
		}
	} else {
		printSyncText(os.Stdout, result)
	}

	if len(result.Errors) > 0 {
		os.Exit(1)
	}

	return nil
}

// doSync opens the sync-state store, acquires the single-writer lock, runs
// one engine pass, and closes everything down before returning — so the
// lock and database connection are always released, even when the caller
// later calls os.Exit based on the result.
func doSync(ctx context.Context, cc *CLIContext) (*sync.Result, error) {
	shutdownCtx := shutdownContext(ctx, cc.Logger)

	cleanup, err := writePIDFile(pidFilePath(cc.Cfg.Sync.StatePath))
	if err != nil {
		return nil, err
	}
	defer cleanup()

	st, err := store.Open(shutdownCtx, cc.Cfg.Sync.StatePath, cc.Logger)
	if err != nil {
		return nil, fmt.Errorf("opening sync-state store: %w", err)
	}
	defer st.Close()

	deviceAdapter := buildDeviceAdapter(cc.Cfg, cc.Logger)
	hostAdapter := buildHostAdapter(cc.Cfg, cc.Logger)

	engine, err := sync.NewEngine(st, deviceAdapter, hostAdapter, engineConfig(cc.Cfg), cc.Logger)
	if err != nil {
		return nil, fmt.Errorf("constructing sync engine: %w", err)
	}

	cc.Statusf("Starting sync run (dry-run=%v)...\n", flagDryRun)

	result, err := engine.RunOnce(shutdownCtx, flagDryRun)
	if err != nil {
		return nil, fmt.Errorf("sync run failed: %w", err)
	}

	return result, nil
}

// pidFilePath derives the PID lock file path from the sync-state database
// path, so the lock lives alongside the data it protects.
func pidFilePath(statePath string) string {
	return statePath + ".lock"
}

func printSyncText(w *os.File, r *sync.Result) {
	mode := "sync"
	if r.DryRun {
		mode = "dry-run"
	}

	fmt.Fprintf(w, "%s complete:\n", mode)
	fmt.Fprintf(w, "  host:   +%d created  ~%d updated  -%d deleted\n", r.CreatedHost, r.UpdatedHost, r.DeletedHost)
	fmt.Fprintf(w, "  device: +%d created  ~%d updated  -%d deleted\n", r.CreatedDevice, r.UpdatedDevice, r.DeletedDevice)
	fmt.Fprintf(w, "  conflicts resolved: %d\n", r.ConflictsResolved)
	fmt.Fprintf(w, "  deduped:            %d\n", r.Deduped)
	fmt.Fprintf(w, "  no change:          %d\n", r.NoChange)

	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "  errors: %d\n", len(r.Errors))

		for _, ae := range r.Errors {
			fmt.Fprintf(w, "    - [%s %s] %s: %v\n", ae.Action.Target, ae.Action.Kind, ae.Action.Reason, ae.Err)
		}
	}
}

type syncJSON struct {
	DryRun            bool     `json:"dry_run"`
	CreatedHost       int      `json:"created_host"`
	UpdatedHost       int      `json:"updated_host"`
	DeletedHost       int      `json:"deleted_host"`
	CreatedDevice     int      `json:"created_device"`
	UpdatedDevice     int      `json:"updated_device"`
	DeletedDevice     int      `json:"deleted_device"`
	ConflictsResolved int      `json:"conflicts_resolved"`
	Deduped           int      `json:"deduped"`
	NoChange          int      `json:"no_change"`
	Errors            []string `json:"errors,omitempty"`
}

func printSyncJSON(w *os.File, r *sync.Result) error {
	out := syncJSON{
		DryRun:            r.DryRun,
		CreatedHost:       r.CreatedHost,
		UpdatedHost:       r.UpdatedHost,
		DeletedHost:       r.DeletedHost,
		CreatedDevice:     r.CreatedDevice,
		UpdatedDevice:     r.UpdatedDevice,
		DeletedDevice:     r.DeletedDevice,
		ConflictsResolved: r.ConflictsResolved,
		Deduped:           r.Deduped,
		NoChange:          r.NoChange,
	}

	for _, ae := range r.Errors {
		out.Errors = append(out.Errors, fmt.Sprintf("[%s %s] %s: %v", ae.Action.Target, ae.Action.Kind, ae.Action.Reason, ae.Err))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

package sync

import (
	"time"

	"github.com/tonimelisma/notesync-go/internal/task"
)

// ConflictDecision is the outcome of resolving one paired task.
type ConflictDecision struct {
	NoOp      bool
	Target    ActionTarget // which side needs updating, when NoOp is false
	Merged    *task.Task   // winner's field values on the loser's native IDs
	Ambiguous bool         // true only when both sides changed since the last sync
}

// Resolve decides which side of a paired task wins: it computes the
// content hash of each side and compares each against the record's
// last_synced_hash to decide whether one side changed since the last
// successful sync, both changed, or neither did.
//
// When both sides changed since the last sync (an unresolvable ambiguity)
// the configured ConflictResolution setting breaks the tie: prefer_recent
// compares modified_at (normalised to naive UTC seconds) and lets Host win
// ties inside the configured window; prefer_host and prefer_device always
// pick that side.
func Resolve(host, device *task.Task, lastHash string, cfg Config, now time.Time) *ConflictDecision {
	hostHash := task.ContentHash(host)
	deviceHash := task.ContentHash(device)

	if hostHash == deviceHash {
		return &ConflictDecision{NoOp: true}
	}

	hostChanged := hostHash != lastHash
	deviceChanged := deviceHash != lastHash

	switch {
	case hostChanged && !deviceChanged:
		// Host changed since the last sync, Device didn't: Host wins.
		return &ConflictDecision{Target: TargetDevice, Merged: mergeWinner(host, device)}
	case deviceChanged && !hostChanged:
		// Device changed since the last sync, Host didn't: Device wins.
		return &ConflictDecision{Target: TargetHost, Merged: mergeWinner(device, host)}
	case !hostChanged && !deviceChanged:
		// Neither side has drifted from the last agreed hash, yet the
		// hashes differ from each other — a degenerate case that should
		// not arise from a well-formed record; treat as no-op rather than
		// guessing.
		return &ConflictDecision{NoOp: true}
	default:
		return resolveAmbiguous(host, device, cfg, now)
	}
}

// resolveAmbiguous handles the case where both sides changed since the
// last synced hash.
func resolveAmbiguous(host, device *task.Task, cfg Config, now time.Time) *ConflictDecision {
	var hostWins bool

	switch cfg.ConflictResolution {
	case ConflictPreferHost:
		hostWins = true
	case ConflictPreferDevice:
		hostWins = false
	default: // ConflictPreferRecent
		hostWins = hostWinsByRecency(host, device, cfg.ConflictWindowSeconds)
	}

	if hostWins {
		return &ConflictDecision{Target: TargetDevice, Merged: mergeWinner(host, device), Ambiguous: true}
	}

	return &ConflictDecision{Target: TargetHost, Merged: mergeWinner(device, host), Ambiguous: true}
}

// hostWinsByRecency compares modified_at timestamps; within windowSeconds
// of each other, Host wins the tie, otherwise the later timestamp wins.
func hostWinsByRecency(host, device *task.Task, windowSeconds int64) bool {
	hostMod := tsOrZero(host.ModifiedAt)
	deviceMod := tsOrZero(device.ModifiedAt)

	diff := deviceMod - hostMod
	if diff < 0 {
		diff = -diff
	}

	if diff <= windowSeconds {
		return true
	}

	return hostMod >= deviceMod
}

func tsOrZero(p *int64) int64 {
	if p == nil {
		return 0
	}

	return *p
}

// mergeWinner copies the sync-relevant fields from winner onto a copy of
// loser, preserving loser's native IDs so the resulting task still
// targets the correct row on the losing side. document_link always comes
// from the Device-originated task if either side carries one, since Host
// never originates a link.
func mergeWinner(winner, loser *task.Task) *task.Task {
	merged := *loser

	merged.Title = winner.Title
	merged.Notes = winner.Notes
	merged.Completed = winner.Completed
	merged.DueDate = winner.DueDate
	merged.Priority = winner.Priority
	merged.Category = winner.Category

	if winner.DocumentLink != nil {
		merged.DocumentLink = winner.DocumentLink
	} else if loser.DocumentLink != nil {
		merged.DocumentLink = loser.DocumentLink
	}

	return &merged
}

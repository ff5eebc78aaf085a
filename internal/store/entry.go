package store

import (
	"time"

	"health-insights/internal/insights"
)

// snapshotEntry is the stored health snapshot.
//
// RecordedAt is used for Last-Write-Wins (LWW) conflict resolution.
// Zero value of RecordedAt means the snapshot came from seed data and any
// recorded write replaces it.
type snapshotEntry struct {
	Snapshot   insights.HealthSnapshot
	RecordedAt time.Time
}

// supersededBy reports whether a write recorded at t replaces the entry.
func (e snapshotEntry) supersededBy(t time.Time) bool {
	return t.After(e.RecordedAt)
}

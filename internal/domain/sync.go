package domain

import "time"

// SyncStatus is a point-in-time snapshot of the weight sync scheduler.
// LastError is reserved for future failure surfacing; the current sync
// pass performs no I/O and never assigns it.
type SyncStatus struct {
	ActivePetIDs []string      `json:"activePetIds"`
	Polling      bool          `json:"polling"`
	Interval     time.Duration `json:"interval"`
	FastUntil    *time.Time    `json:"fastUntil,omitempty"`
	LastSyncAt   *time.Time    `json:"lastSyncAt,omitempty"`
	Syncing      bool          `json:"syncing"`
	LastError    string        `json:"lastError,omitempty"`
}

package in

import (
	"time"

	"fast/internal/modules/timer/dto"
)

// Engine drives the once-per-second recomputation for the bound session.
// Every operation is idempotent and safe to call when nothing is bound.
type Engine interface {
	Start(binding dto.Binding)
	Stop()
	// Refresh forces an out-of-band recomputation, e.g. when the process
	// resumes after a long suspension.
	Refresh() dto.Snapshot
	// SetAnchor re-anchors a running engine after a retroactive edit; the
	// next tick reflects the new bounds without a restart.
	SetAnchor(start time.Time, target *time.Duration)
	Snapshot() dto.Snapshot
}

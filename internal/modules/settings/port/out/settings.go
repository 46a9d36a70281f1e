package out

import (
	"context"

	"fast/internal/modules/settings/domain"
)

// Store persists reminder settings. Load returns defaults when nothing has
// been saved yet.
type Store interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
}

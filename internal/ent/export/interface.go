package export

import (
	"context"

	"github.com/gnames/dwcacheck/internal/ent/dwca"
)

// Exporter is the interface that wraps the Export method.
type Exporter interface {
	// Export saves taxa to an external storage, replacing previous data.
	Export(ctx context.Context, taxa []dwca.Taxon) error
}

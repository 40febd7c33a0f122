package dwcacheck

import (
	"context"

	"github.com/gnames/dwcacheck/internal/ent/dwca"
	"github.com/gnames/dwcacheck/internal/ent/export"
	"github.com/gnames/dwcacheck/internal/io/dwcaio"
	"github.com/gnames/dwcacheck/pkg/config"
)

// progressStep is the number of requests between progress messages.
const progressStep = 50

// dwcacheck is an implementation of DwCACheck interface.
type dwcacheck struct {
	cfg config.Config
}

// New creates a new instance of DwCACheck.
func New(
	cfg config.Config,
) DwCACheck {
	res := dwcacheck{
		cfg: cfg}
	return &res
}

// Datasets returns datasets of the base directory sorted by name.
func (d *dwcacheck) Datasets() ([]dwca.Dataset, error) {
	return dwcaio.Locate(d.cfg.BaseDir)
}

// Dataset returns a dataset by name, it fails if there is no such
// directory.
func (d *dwcacheck) Dataset(name string) (dwca.Dataset, error) {
	return dwcaio.Open(d.cfg.BaseDir, name)
}

// ExportTaxa saves taxa with an exporter.
func (d *dwcacheck) ExportTaxa(
	ctx context.Context,
	ex export.Exporter,
	taxa []dwca.Taxon,
) error {
	return ex.Export(ctx, taxa)
}

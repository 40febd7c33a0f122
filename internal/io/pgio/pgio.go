// Package pgio saves taxa to PostgreSQL.
package pgio

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gnames/dwcacheck/internal/ent/dwca"
	"github.com/gnames/dwcacheck/internal/ent/export"
	"github.com/gnames/dwcacheck/pkg/config"
	"github.com/gnames/dwcacheck/pkg/ent/model"
	"github.com/gnames/dwcacheck/pkg/io/modelio"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// batchSize is the number of rows sent in one COPY.
const batchSize = 50_000

// pgio implements export.Exporter interface.
type pgio struct {
	cfg config.Config
	db  *pgxpool.Pool
}

// New connects to the database and makes sure the taxa table exists.
func New(cfg config.Config) (export.Exporter, error) {
	db, err := pgxConn(cfg)
	if err != nil {
		return nil, err
	}
	res := pgio{cfg: cfg, db: db}
	if err = res.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return &res, nil
}

// Export replaces content of the taxa table.
func (p *pgio) Export(ctx context.Context, taxa []dwca.Taxon) error {
	defer p.db.Close()

	_, err := p.db.Exec(ctx, "TRUNCATE TABLE taxa")
	if err != nil {
		slog.Error("Cannot truncate table", "table", "taxa", "error", err)
		return err
	}

	var total int64
	for start := 0; start < len(taxa); start += batchSize {
		end := min(start+batchSize, len(taxa))
		saved, err := p.saveTaxa(ctx, taxa[start:end])
		if err != nil {
			slog.Error("Cannot save taxa", "error", err)
			return fmt.Errorf("save taxa: %w", err)
		}
		total += saved
	}
	slog.Info("Uploaded taxa", "records", humanize.Comma(total))
	return nil
}

func (p *pgio) migrate() error {
	grm, err := gormConn(p.cfg)
	if err != nil {
		return err
	}
	defer grm.Close()

	slog.Info("Running database migrations")
	if err = modelio.New(grm).Migrate(); err != nil {
		slog.Error("Cannot migrate database", "error", err)
		return err
	}
	if err = model.SetCollation(p.db); err != nil {
		return err
	}
	slog.Info("Database migrations completed")
	return nil
}

func (p *pgio) saveTaxa(ctx context.Context, taxa []dwca.Taxon) (int64, error) {
	columns := []string{
		"taxon_id", "scientific_name", "taxon_rank", "dataset",
		"canonical", "name_id",
	}
	rows := make([][]any, len(taxa))
	for i, t := range taxa {
		rows[i] = []any{
			t.ID, t.ScientificName, t.TaxonRank, t.Dataset,
			nullString(t.Canonical), nullString(t.NameID),
		}
	}
	return p.db.CopyFrom(
		ctx,
		pgx.Identifier{"taxa"},
		columns,
		pgx.CopyFromRows(rows),
	)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

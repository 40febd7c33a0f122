package model

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Taxon is a taxon record of a dataset.
type Taxon struct {
	// ID is an autoincremented primary key.
	ID uint `gorm:"primary_key"`

	// TaxonID is the taxon identifier given by the dataset.
	TaxonID string `gorm:"type:varchar(255);index:taxon_id"`

	// ScientificName is the name-string as given by the dataset.
	ScientificName string `gorm:"type:varchar(500);not null;index:scientific_name"`

	// TaxonRank is the rank as given by the dataset.
	TaxonRank string `gorm:"type:varchar(100)"`

	// Dataset is the directory name of the dataset.
	Dataset string `gorm:"type:varchar(255);not null;index:dataset"`

	// Canonical is the simple canonical form of the name-string.
	Canonical sql.NullString `gorm:"type:varchar(255);index:canonical"`

	// NameID is UUID v5 generated from the name-string using
	// DNS:"globalnames.org" as a seed.
	NameID sql.NullString `gorm:"type:uuid;index:name_id"`
}

// TableName sets the name of the taxa table.
func (Taxon) TableName() string {
	return "taxa"
}

// SetCollation makes sorting of name-strings in the database follow their
// byte order, the same order as used by TSV reports.
func SetCollation(db *pgxpool.Pool) error {
	ctx := context.Background()
	type d struct {
		table, column string
		varchar       int
	}
	data := []d{
		{"taxa", "scientific_name", 500},
		{"taxa", "canonical", 255},
	}
	qStr := `
ALTER TABLE %s
	ALTER COLUMN %s TYPE VARCHAR(%d) COLLATE "C"
`

	for _, v := range data {
		q := fmt.Sprintf(qStr, v.table, v.column, v.varchar)
		_, err := db.Exec(ctx, q)
		if err != nil {
			slog.Error(
				"Cannot set collation.",
				"table", v.table,
				"column", v.column,
			)
			return err
		}
	}
	return nil
}

package modelio

import (
	"github.com/gnames/dwcacheck/pkg/ent/model"
	"github.com/jinzhu/gorm"
)

type modelio struct {
	db *gorm.DB
}

// New returns a new instance of Model
func New(db *gorm.DB) model.Model {
	res := modelio{db: db}
	return &res
}

// Migrate creates the taxa table and its indices.
func (m *modelio) Migrate() error {
	return m.db.AutoMigrate(&model.Taxon{}).Error
}

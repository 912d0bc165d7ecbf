package schema

import "gorm.io/gorm"

// Probe answers read-only questions about the live schema. Cascade logic
// consults it before touching optional tables so partially migrated
// deployments degrade to skipping instead of failing.
type Probe interface {
	TableExists(name string) bool
	ColumnExists(table, column string) bool
}

type migratorProbe struct {
	db *gorm.DB
}

func NewProbe(db *gorm.DB) Probe {
	return &migratorProbe{db: db}
}

func (p *migratorProbe) TableExists(name string) bool {
	if p == nil || p.db == nil || name == "" {
		return false
	}
	return p.db.Migrator().HasTable(name)
}

func (p *migratorProbe) ColumnExists(table, column string) bool {
	if p == nil || p.db == nil || table == "" || column == "" {
		return false
	}
	if !p.db.Migrator().HasTable(table) {
		return false
	}
	return p.db.Migrator().HasColumn(table, column)
}

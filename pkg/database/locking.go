package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForUpdate scopes a query on table to rows locked for update until the
// surrounding transaction ends. SQLite ignores the clause; it serializes
// writers on its own.
func ForUpdate(db *gorm.DB, table string) *gorm.DB {
	if db.Dialector.Name() == "sqlserver" {
		return db.Table(table + " WITH (UPDLOCK, ROWLOCK)")
	}
	return db.Table(table).Clauses(clause.Locking{Strength: "UPDATE"})
}

// ForShare locks the selected rows against concurrent delete or update
// while still letting other readers share them.
func ForShare(db *gorm.DB, table string) *gorm.DB {
	if db.Dialector.Name() == "sqlserver" {
		return db.Table(table + " WITH (HOLDLOCK, ROWLOCK)")
	}
	return db.Table(table).Clauses(clause.Locking{Strength: "SHARE"})
}

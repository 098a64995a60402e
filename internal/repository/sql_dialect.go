package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName resolves the dialect name, defaulting to sqlite.
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// dateBucketExpr builds a per-day bucket expression, compatible with sqlite and postgres.
func dateBucketExpr(db *gorm.DB, column string) string {
	return dateBucketExprByDialect(dbDialectName(db), column)
}

func dateBucketExprByDialect(dialect, column string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return fmt.Sprintf("to_char(%s, 'YYYY-MM-DD')", column)
	default:
		return fmt.Sprintf("strftime('%%Y-%%m-%%d', %s)", column)
	}
}

// likeOperatorByDialect case-insensitive match operator per dialect.
func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

package repository

import (
	"strings"

	"github.com/sangkips/salesdesk-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ctxKey string

// Paginate applies offset and limit from page parameters
func Paginate(params *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		params.Validate()
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}

// Search matches term case-insensitively against any of the columns.
// LOWER/LIKE is used instead of ILIKE so the query runs on SQLite too.
func Search(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + strings.ToLower(term) + "%"
		conds := make([]string, 0, len(columns))
		args := make([]interface{}, 0, len(columns))
		for _, col := range columns {
			conds = append(conds, "LOWER("+col+") LIKE ?")
			args = append(args, pattern)
		}
		return db.Where(strings.Join(conds, " OR "), args...)
	}
}

// ForUpdate locks the selected rows on PostgreSQL. SQLite serialises writers
// on its own and has no FOR UPDATE.
func ForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

func orderBy(sortBy, sortOrder string, allowed ...string) string {
	col := "created_at"
	for _, a := range allowed {
		if a == sortBy {
			col = sortBy
			break
		}
	}
	dir := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}

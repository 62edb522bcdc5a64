package reports

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ARQAP/museum-insights/src/apperr"
	"gorm.io/gorm"
)

// Result is a tabular query result.
type Result struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Args carries the raw user input for parameterized reports.
type Args struct {
	ArtifactID string
	Department string
}

// Bind turns user input into the bound argument list of a report.
// Input never becomes part of the SQL text.
func (r Report) Bind(args Args) ([]any, error) {
	switch r.Param {
	case ArtifactIDParam:
		raw := strings.TrimSpace(args.ArtifactID)
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			return nil, apperr.Invalid("reports.bind", "report %d needs a positive artifact id, got %q", r.ID, raw)
		}
		return []any{id}, nil
	case DepartmentParam:
		if args.Department == "" {
			return nil, apperr.Invalid("reports.bind", "report %d needs a department name", r.ID)
		}
		return []any{args.Department}, nil
	default:
		return nil, nil
	}
}

// Run executes the report on conn.
func Run(conn *gorm.DB, r Report, args Args) (*Result, error) {
	bound, err := r.Bind(args)
	if err != nil {
		return nil, err
	}
	res, err := query(conn, r.SQL, bound...)
	if err != nil {
		return nil, fmt.Errorf("running report %d: %w", r.ID, err)
	}
	return res, nil
}

// Table is one of the browsable artifact tables.
type Table string

const (
	MetadataTable Table = "artifact_metadata"
	MediaTable    Table = "artifact_media"
	ColorsTable   Table = "artifact_colors"
)

// ParseTable validates a table name against the browsable set.
func ParseTable(name string) (Table, error) {
	switch Table(name) {
	case MetadataTable, MediaTable, ColorsTable:
		return Table(name), nil
	}
	return "", apperr.Invalid("reports.table", "unknown table %q", name)
}

// Browse lists the rows of table that belong to artifacts of classification.
func Browse(conn *gorm.DB, table Table, classification string) (*Result, error) {
	var sql string
	switch table {
	case MetadataTable:
		sql = "SELECT * FROM artifact_metadata WHERE classification = ?"
	case MediaTable, ColorsTable:
		// table is one of the constants above, never user text
		sql = "SELECT t.* FROM " + string(table) + " t JOIN artifact_metadata m ON t.objectid = m.id WHERE m.classification = ?"
	default:
		return nil, apperr.Invalid("reports.table", "unknown table %q", table)
	}
	res, err := query(conn, sql, classification)
	if err != nil {
		return nil, fmt.Errorf("browsing %s: %w", table, err)
	}
	return res, nil
}

func query(conn *gorm.DB, sql string, args ...any) (*Result, error) {
	rows, err := conn.Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	res := &Result{Columns: columns, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		res.Rows = append(res.Rows, values)
	}
	return res, rows.Err()
}

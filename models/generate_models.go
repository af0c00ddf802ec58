package models

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

/*
Tooling for the GENERATE_MODELS and GENERATE_COLUMN_REPORT switches.

GENERATE_MODELS=true migrates the schema, prints the column report and writes
typed query helpers to ./generated. GENERATE_COLUMN_REPORT=true prints only the
report: columns present in the database that no model field maps to.

Example output:
=== COLUMN MISMATCH REPORT ===
--- Table: posts ---
Found 1 columns not accounted for in model:
  - legacy_slug

--- Table: post_categories ---
All columns are accounted for in the model.

=== SUMMARY ===
Total mismatched columns across all tables: 1
*/

// All returns one zero value of every persisted model, parents before join tables.
func All() []any {
	return []any{&Post{}, &Category{}, &PostCategory{}}
}

// GenerateQueries writes gorm/gen query helpers for every model into outPath.
func GenerateQueries(db *gorm.DB, outPath string) {
	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(Post{}, Category{}, PostCategory{})
	g.Execute()
}

// TableColumns compares one table's live columns with its model.
type TableColumns struct {
	Table    string
	Exists   bool
	Unmodeled []string
}

// ColumnReport inspects every model's table.
func ColumnReport(db *gorm.DB) ([]TableColumns, error) {
	report := make([]TableColumns, 0, len(All()))
	for _, model := range All() {
		modelColumns, table, err := modelColumns(model, db.NamingStrategy)
		if err != nil {
			return nil, err
		}

		entry := TableColumns{Table: table}
		if !db.Migrator().HasTable(model) {
			report = append(report, entry)
			continue
		}
		entry.Exists = true

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("columns of %s: %w", table, err)
		}
		live := make([]string, 0, len(columnTypes))
		for _, ct := range columnTypes {
			live = append(live, ct.Name())
		}
		entry.Unmodeled = unmodeledColumns(live, modelColumns)
		report = append(report, entry)
	}
	return report, nil
}

// WriteColumnReport prints report and returns the total number of unmodeled columns.
func WriteColumnReport(w io.Writer, report []TableColumns) int {
	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")

	total := 0
	for _, t := range report {
		fmt.Fprintf(w, "--- Table: %s ---\n", t.Table)
		switch {
		case !t.Exists:
			fmt.Fprintln(w, "Table does not exist yet (will be created during migration)")
		case len(t.Unmodeled) == 0:
			fmt.Fprintln(w, "All columns are accounted for in the model.")
		default:
			fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(t.Unmodeled))
			for _, col := range t.Unmodeled {
				fmt.Fprintf(w, "  - %s\n", col)
			}
			total += len(t.Unmodeled)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "=== SUMMARY ===")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", total)
	return total
}

// modelColumns resolves the column names gorm maps model's fields to.
func modelColumns(model any, namer schema.Namer) ([]string, string, error) {
	if namer == nil {
		namer = schema.NamingStrategy{}
	}
	s, err := schema.Parse(model, &sync.Map{}, namer)
	if err != nil {
		return nil, "", fmt.Errorf("parse model %T: %w", model, err)
	}
	return s.DBNames, s.Table, nil
}

func unmodeledColumns(live, modeled []string) []string {
	known := make(map[string]bool, len(modeled))
	for _, c := range modeled {
		known[c] = true
	}
	var out []string
	for _, c := range live {
		if !known[c] {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

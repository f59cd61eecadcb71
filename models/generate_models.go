package models

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gen"
	"gorm.io/gorm"
)

/*
Schema tooling.

GENERATE_MODELS=true migrates the schema and writes typed query helpers to ./generated.
GENERATE_COLUMN_REPORT=true lists database columns that no model field maps to:

	--- Table: projects ---
	Found 1 columns not accounted for in model:
	  - legacy_owner
*/

// Tables maps each persisted table to the model stored in it.
func Tables() map[string]any {
	return map[string]any{
		"projects":         Project{},
		"milestones":       Milestone{},
		"risks":            Risk{},
		"tasks":            Task{},
		"inventory_usages": InventoryUsage{},
		"users":            User{},
		"inventory_items":  InventoryItem{},
		"service_orders":   ServiceOrder{},
	}
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Project{},
		&Milestone{},
		&Risk{},
		&Task{},
		&InventoryUsage{},
		&User{},
		&InventoryItem{},
		&ServiceOrder{},
	)
}

// GenerateModels migrates the schema and emits query helpers to outPath.
func GenerateModels(db *gorm.DB, outPath string) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	migrateDB := db.Session(&gorm.Session{SkipDefaultTransaction: true, PrepareStmt: false})
	log.Info().Msg("Migrating models...")
	if err := Migrate(migrateDB); err != nil {
		return fmt.Errorf("migrate models: %w", err)
	}

	report, err := ColumnReport(db)
	if err != nil {
		return err
	}
	PrintColumnReport(report)

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(
		Project{},
		Milestone{},
		Risk{},
		Task{},
		InventoryUsage{},
		User{},
		InventoryItem{},
		ServiceOrder{},
	)
	g.Execute()
	log.Info().Str("outPath", outPath).Msg("Model generation complete")
	return nil
}

// ColumnReport returns, per existing table, the columns no model field maps to.
// Tables that do not exist yet are skipped.
func ColumnReport(db *gorm.DB) (map[string][]string, error) {
	report := make(map[string][]string)
	for table, model := range Tables() {
		columns, exists, err := tableColumns(db, table)
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}
		report[table] = unmappedColumns(columns, modelColumns(model))
	}
	return report, nil
}

// PrintColumnReport logs a report produced by ColumnReport.
func PrintColumnReport(report map[string][]string) {
	tables := make([]string, 0, len(report))
	for t := range report {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	total := 0
	for _, t := range tables {
		fmt.Printf("\n--- Table: %s ---\n", t)
		if len(report[t]) == 0 {
			fmt.Println("All columns are accounted for in the model.")
			continue
		}
		fmt.Printf("Found %d columns not accounted for in model:\n", len(report[t]))
		for _, col := range report[t] {
			fmt.Printf("  - %s\n", col)
		}
		total += len(report[t])
	}
	fmt.Printf("\n=== SUMMARY ===\nTotal mismatched columns across all tables: %d\n", total)
}

func tableColumns(db *gorm.DB, table string) ([]string, bool, error) {
	var exists bool
	if err := db.Raw(`
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = CURRENT_SCHEMA() AND table_name = ?
		)`, table).Scan(&exists).Error; err != nil {
		return nil, false, fmt.Errorf("check table %s: %w", table, err)
	}
	if !exists {
		return nil, false, nil
	}

	var columns []string
	if err := db.Raw(`
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = ? AND table_schema = CURRENT_SCHEMA()
		ORDER BY ordinal_position`, table).Scan(&columns).Error; err != nil {
		return nil, true, fmt.Errorf("query columns for %s: %w", table, err)
	}
	return columns, true, nil
}

// modelColumns collects the column names declared through `db` tags,
// following embedded structs and their gorm embeddedPrefix.
func modelColumns(model any) []string {
	return structColumns(reflect.TypeOf(model), "")
}

func structColumns(t reflect.Type, prefix string) []string {
	var columns []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		gormTag := field.Tag.Get("gorm")
		if strings.Contains(gormTag, "embedded") && field.Type.Kind() == reflect.Struct {
			columns = append(columns, structColumns(field.Type, prefix+gormSetting(gormTag, "embeddedPrefix"))...)
			continue
		}
		if name := field.Tag.Get("db"); name != "" && name != "-" {
			columns = append(columns, prefix+name)
			continue
		}
		if strings.Contains(gormTag, "column:") {
			columns = append(columns, prefix+gormSetting(gormTag, "column"))
		}
	}
	return columns
}

func gormSetting(tag, key string) string {
	for _, part := range strings.Split(tag, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, key+":") {
			return strings.TrimPrefix(part, key+":")
		}
	}
	return ""
}

func unmappedColumns(dbColumns, modelFields []string) []string {
	known := make(map[string]bool, len(modelFields))
	for _, f := range modelFields {
		known[f] = true
	}
	mismatches := []string{}
	for _, col := range dbColumns {
		if !known[col] {
			mismatches = append(mismatches, col)
		}
	}
	return mismatches
}

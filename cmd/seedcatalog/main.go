// Command seedcatalog converts a curriculum-matrix Excel file into a SQL
// seed file. The workbook carries one "Disciplinas" sheet (code, name,
// hours, level) and one "Equivalencias" sheet (origin code, expression).
// Usage: go run ./cmd/seedcatalog <matriz.xlsx> <program name> <version>
// Output: db/seeds/catalog.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

type subjectEntry struct {
	code  string
	name  string
	hours int
	level int
}

type equivalencyEntry struct {
	originCode string
	expression string
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 4 {
		return fmt.Errorf("usage: seedcatalog <matriz.xlsx> <program name> <version>")
	}
	xlsxPath, program, version := os.Args[1], os.Args[2], os.Args[3]
	outPath := "db/seeds/catalog.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	subjects, err := parseSubjectSheet(f)
	if err != nil {
		return fmt.Errorf("parse Disciplinas sheet: %w", err)
	}
	log.Printf("Disciplinas sheet: %d entries", len(subjects))

	equivalencies, err := parseEquivalencySheet(f)
	if err != nil {
		return fmt.Errorf("parse Equivalencias sheet: %w", err)
	}
	log.Printf("Equivalencias sheet: %d entries", len(equivalencies))

	sql := buildSeedSQL(program, version, subjects, equivalencies)
	if err := os.MkdirAll("db/seeds", 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, []byte(sql), 0o644); err != nil {
		return fmt.Errorf("write seed file: %w", err)
	}
	log.Printf("wrote %s", outPath)
	return nil
}

func parseSubjectSheet(f *excelize.File) ([]subjectEntry, error) {
	rows, err := f.GetRows("Disciplinas")
	if err != nil {
		return nil, err
	}
	var entries []subjectEntry
	seen := map[string]bool{}
	for i, row := range rows {
		if i == 0 || len(row) < 4 {
			continue
		}
		code := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		if code == "" || name == "" || seen[code] {
			continue
		}
		hours, _ := strconv.Atoi(strings.TrimSpace(row[2]))
		level, _ := strconv.Atoi(strings.TrimSpace(row[3]))
		seen[code] = true
		entries = append(entries, subjectEntry{code: code, name: name, hours: hours, level: level})
	}
	return entries, nil
}

func parseEquivalencySheet(f *excelize.File) ([]equivalencyEntry, error) {
	rows, err := f.GetRows("Equivalencias")
	if err != nil {
		// The sheet is optional; a matrix without equivalencies is valid.
		return nil, nil
	}
	var entries []equivalencyEntry
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue
		}
		origin := strings.TrimSpace(row[0])
		expr := strings.TrimSpace(row[1])
		if origin == "" || expr == "" {
			continue
		}
		entries = append(entries, equivalencyEntry{originCode: origin, expression: expr})
	}
	return entries, nil
}

func buildSeedSQL(program, version string, subjects []subjectEntry, equivalencies []equivalencyEntry) string {
	var b strings.Builder
	b.WriteString("BEGIN;\n\n")
	fmt.Fprintf(&b, "INSERT INTO catalogs (id, program_name, version) VALUES (gen_random_uuid(), %s, %s)\nON CONFLICT (program_name, version) DO NOTHING;\n\n",
		quote(program), quote(version))

	for _, s := range subjects {
		fmt.Fprintf(&b,
			"INSERT INTO subjects (id, catalog_id, code, name, credit_hours, level)\nSELECT gen_random_uuid(), c.id, %s, %s, %d, %d FROM catalogs c WHERE c.program_name = %s AND c.version = %s\nON CONFLICT (catalog_id, code) DO NOTHING;\n",
			quote(s.code), quote(s.name), s.hours, s.level, quote(program), quote(version))
	}
	b.WriteString("\n")

	for _, e := range equivalencies {
		fmt.Fprintf(&b,
			"INSERT INTO equivalency_rules (id, origin_subject_id, expression)\nSELECT gen_random_uuid(), s.id, %s FROM subjects s JOIN catalogs c ON c.id = s.catalog_id\nWHERE s.code = %s AND c.program_name = %s AND c.version = %s;\n",
			quote(e.expression), quote(e.originCode), quote(program), quote(version))
	}

	b.WriteString("\nCOMMIT;\n")
	return b.String()
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

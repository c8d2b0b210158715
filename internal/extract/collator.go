// Package extract reconstructs tabular academic records from the positioned
// text fragments of a rendered transcript (histórico escolar). The source
// system ships at least four layout variants of the same document; the
// pipeline here tolerates all of them.
package extract

import (
	"sort"
	"strings"

	"academico/internal/domain"
)

// yTolerance is the vertical distance, in layout units, within which two
// fragments are considered part of the same row.
const yTolerance = 3.0

// Row is an ordered run of fragments sharing a Y coordinate on one page.
// Rows are transient: rebuilt for every extraction pass.
type Row struct {
	Page      int
	Y         float64
	Fragments []domain.PositionedFragment
}

// Text returns the row's fragments joined left to right.
func (r *Row) Text() string {
	parts := make([]string, 0, len(r.Fragments))
	for _, f := range r.Fragments {
		if t := strings.TrimSpace(f.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// CollateRows groups every page's fragments into rows by vertical proximity
// and orders them in reading order: page ascending, then Y descending (top
// of page first), fragments X ascending within a row.
//
// Fragments are sorted by Y before bucketing, so the grouping is identical
// under any permutation of the same-page input.
func CollateRows(doc *domain.TranscriptDocument) []Row {
	var rows []Row
	for _, page := range doc.Pages {
		rows = append(rows, collatePage(page)...)
	}
	return rows
}

func collatePage(page domain.Page) []Row {
	frags := make([]domain.PositionedFragment, 0, len(page.Fragments))
	for _, f := range page.Fragments {
		if strings.TrimSpace(f.Text) == "" {
			continue
		}
		frags = append(frags, f)
	}
	if len(frags) == 0 {
		return nil
	}

	sort.SliceStable(frags, func(i, j int) bool {
		if frags[i].Y != frags[j].Y {
			return frags[i].Y < frags[j].Y
		}
		return frags[i].X < frags[j].X
	})

	var rows []Row
	current := Row{Page: page.Number, Y: frags[0].Y}
	for _, f := range frags {
		// The anchor is the bucket's lowest Y; the list is sorted, so a
		// fragment either extends the current bucket or opens the next one.
		if f.Y-current.Y <= yTolerance {
			current.Fragments = append(current.Fragments, f)
			continue
		}
		rows = append(rows, current)
		current = Row{Page: page.Number, Y: f.Y, Fragments: []domain.PositionedFragment{f}}
	}
	rows = append(rows, current)

	// Top of page first: Y descending.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Y > rows[j].Y
	})
	for i := range rows {
		sortByX(rows[i].Fragments)
	}
	return rows
}

func sortByX(frags []domain.PositionedFragment) {
	sort.SliceStable(frags, func(i, j int) bool {
		return frags[i].X < frags[j].X
	})
}

// FlattenText renders the collated rows as plain text, one line per row, in
// reading order. The metadata, pending-section and detailed-format parsers
// all work over this flattened form.
func FlattenText(rows []Row) string {
	var b strings.Builder
	for i := range rows {
		line := rows[i].Text()
		if line == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return b.String()
}

package extract

import (
	"math"
	"strings"

	"academico/internal/domain"
)

// Column identifies one semantic column of the transcript table.
type Column int

const (
	ColPeriod Column = iota
	ColSymbol
	ColCode
	ColContent
	ColCreditHours
	ColSection
	ColAttendance
	ColGrade
	ColOutcome
	numColumns
)

// ColumnBounds maps each semantic column to a half-open X interval [Lo, Hi).
// A fragment belongs to the column whose interval contains its X coordinate.
type ColumnBounds [numColumns]struct{ Lo, Hi float64 }

// headerMargin is subtracted from a header label's X position when deriving
// the start of its column.
const headerMargin = 6.0

// DefaultColumnBounds is tuned to the source system's usual table geometry
// and is used whenever no header row is found on the page.
func DefaultColumnBounds() ColumnBounds {
	var b ColumnBounds
	set := func(c Column, lo, hi float64) { b[c].Lo, b[c].Hi = lo, hi }
	set(ColPeriod, 20, 88)
	set(ColSymbol, 88, 106)
	set(ColCode, 106, 160)
	set(ColContent, 160, 330)
	set(ColCreditHours, 330, 364)
	set(ColSection, 364, 398)
	set(ColAttendance, 398, 432)
	set(ColGrade, 432, 466)
	set(ColOutcome, 466, math.Inf(1))
	return b
}

// headerLabels are the column labels the source system prints, normalized.
var headerLabels = map[string]Column{
	"CH":       ColCreditHours,
	"TURMA":    ColSection,
	"FREQ":     ColAttendance,
	"FREQ.":    ColAttendance,
	"NOTA":     ColGrade,
	"SITUACAO": ColOutcome,
}

// DetectColumnBounds looks for a header row carrying the known column labels
// and derives boundaries from each label's X position. Returns the default
// bounds when fewer than three labels are found on any single row.
func DetectColumnBounds(rows []Row) ColumnBounds {
	for i := range rows {
		if b, ok := boundsFromHeader(&rows[i]); ok {
			return b
		}
	}
	return DefaultColumnBounds()
}

func boundsFromHeader(row *Row) (ColumnBounds, bool) {
	positions := map[Column]float64{}
	for _, f := range row.Fragments {
		if col, ok := headerLabels[domain.NormalizeToken(f.Text)]; ok {
			if _, seen := positions[col]; !seen {
				positions[col] = f.X
			}
		}
	}
	if len(positions) < 3 {
		return ColumnBounds{}, false
	}

	b := DefaultColumnBounds()
	// Right-hand columns start a small margin before their label; each
	// column ends where the next detected one begins.
	ordered := []Column{ColCreditHours, ColSection, ColAttendance, ColGrade, ColOutcome}
	prev := ColContent
	for _, col := range ordered {
		x, ok := positions[col]
		if !ok {
			continue
		}
		lo := x - headerMargin
		b[col].Lo = lo
		b[prev].Hi = lo
		prev = col
	}
	b[prev].Hi = math.Inf(1)
	return b, true
}

// columnText holds the concatenated text of each semantic column for one row.
type columnText [numColumns]string

// splitColumns assigns every fragment to its column and concatenates the
// fragments of each column in X order.
func splitColumns(row *Row, bounds ColumnBounds) columnText {
	var cols [numColumns][]string
	for _, f := range row.Fragments {
		t := strings.TrimSpace(f.Text)
		if t == "" {
			continue
		}
		col, ok := columnFor(f.X, bounds)
		if !ok {
			continue
		}
		cols[col] = append(cols[col], t)
	}
	var out columnText
	for c := range cols {
		out[c] = strings.Join(cols[c], " ")
	}
	return out
}

func columnFor(x float64, bounds ColumnBounds) (Column, bool) {
	for c := Column(0); c < numColumns; c++ {
		if x >= bounds[c].Lo && x < bounds[c].Hi {
			return c, true
		}
	}
	return 0, false
}

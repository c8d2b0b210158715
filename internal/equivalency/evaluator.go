// Package equivalency evaluates the boolean subject-equivalency expressions
// the catalog attaches to its subjects: infix AND/OR over subject codes,
// grouped by parentheses. Precedence is implicit — OR binds looser than AND,
// so a bare mixed expression splits on OR first.
package equivalency

import (
	"sort"
	"strings"
)

// CodeSet is a case/whitespace-insensitive set of completed subject codes.
type CodeSet map[string]bool

// NewCodeSet builds a CodeSet from raw codes.
func NewCodeSet(codes []string) CodeSet {
	s := make(CodeSet, len(codes))
	for _, c := range codes {
		s[canonical(c)] = true
	}
	return s
}

// Contains reports membership of a raw code.
func (s CodeSet) Contains(code string) bool {
	return s[canonical(code)]
}

func canonical(code string) string {
	return strings.ToUpper(strings.Join(strings.Fields(code), ""))
}

// Evaluate decides whether the completed set satisfies the expression and
// returns the specific completed codes that did — the callers report which
// subject justified an equivalency, not just that one exists.
//
// Satisfied ORs contribute the union of their true sides; an unsatisfied
// AND yields an empty set.
func Evaluate(expr string, completed CodeSet) (bool, []string) {
	ok, matched := evaluate(expr, completed)
	if !ok {
		return false, nil
	}
	codes := make([]string, 0, len(matched))
	for c := range matched {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return true, codes
}

func evaluate(expr string, completed CodeSet) (bool, map[string]bool) {
	expr = stripEnclosing(strings.TrimSpace(expr))
	if expr == "" {
		return false, nil
	}

	if l, r, found := splitTopLevel(expr, "OR"); found {
		lok, lm := evaluate(l, completed)
		rok, rm := evaluate(r, completed)
		if !lok && !rok {
			return false, nil
		}
		matched := map[string]bool{}
		if lok {
			for c := range lm {
				matched[c] = true
			}
		}
		if rok {
			for c := range rm {
				matched[c] = true
			}
		}
		return true, matched
	}

	if l, r, found := splitTopLevel(expr, "AND"); found {
		lok, lm := evaluate(l, completed)
		if !lok {
			return false, nil
		}
		rok, rm := evaluate(r, completed)
		if !rok {
			return false, nil
		}
		for c := range rm {
			lm[c] = true
		}
		return true, lm
	}

	// Base case: a single subject code.
	code := canonical(expr)
	if completed[code] {
		return true, map[string]bool{code: true}
	}
	return false, nil
}

// stripEnclosing removes one layer of parentheses when they enclose the
// whole expression.
func stripEnclosing(expr string) string {
	for strings.HasPrefix(expr, "(") && strings.HasSuffix(expr, ")") {
		depth := 0
		enclosing := true
		for i, r := range expr {
			switch r {
			case '(':
				depth++
			case ')':
				depth--
			}
			if depth == 0 && i < len(expr)-1 {
				enclosing = false
				break
			}
		}
		if !enclosing {
			return expr
		}
		expr = strings.TrimSpace(expr[1 : len(expr)-1])
	}
	return expr
}

// splitTopLevel finds the rightmost word-boundary-safe occurrence of the
// operator at parenthesis depth 0 and splits the expression around it.
func splitTopLevel(expr, op string) (left, right string, found bool) {
	upper := strings.ToUpper(expr)
	depth := make([]int, len(expr))
	d := 0
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '(':
			d++
		case ')':
			d--
		}
		depth[i] = d
	}

	for i := len(upper) - len(op); i >= 0; i-- {
		if upper[i:i+len(op)] != op || depth[i] != 0 {
			continue
		}
		if !boundaryBefore(upper, i) || !boundaryAfter(upper, i+len(op)) {
			continue
		}
		return strings.TrimSpace(expr[:i]), strings.TrimSpace(expr[i+len(op):]), true
	}
	return "", "", false
}

func boundaryBefore(s string, i int) bool {
	return i == 0 || !isWordByte(s[i-1])
}

func boundaryAfter(s string, i int) bool {
	return i >= len(s) || !isWordByte(s[i])
}

func isWordByte(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

package oracle

import (
	"fmt"
	"strings"
)

const (
	q1Prefix = "[QUERY 1 - FINAL]:"
	q4Prefix = "[QUERY 4 - PARCIAL]:"
	q5Prefix = "[QUERY 5 - PARCIAL]:"
)

// QueryReport is the outcome of checking one query.
type QueryReport struct {
	Query uint8
	// Missing lists the expected lines that were not found.
	Missing []string
	// For q1, the expected and found totals line.
	Expected string
	Found    string
	// For q4 and q5, the number of partial lines expected and found.
	ExpectedCount int
	FoundCount    int
	counted       bool
}

func (r QueryReport) Passed() bool {
	if len(r.Missing) > 0 {
		return false
	}
	if r.counted && r.ExpectedCount != r.FoundCount {
		return false
	}
	return r.Expected == r.Found
}

type check func(lines []string) QueryReport

func hasLineWithPrefix(lines []string, prefix string) bool {
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			return true
		}
	}
	return false
}

func countPrefix(lines []string, prefix string) int {
	n := 0
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			n++
		}
	}
	return n
}

func checkQ1(p Platforms) check {
	return func(lines []string) QueryReport {
		r := QueryReport{
			Query:    1,
			Expected: fmt.Sprintf("Windows: %s, Mac: %s, Linux: %s", p.Windows, p.Mac, p.Linux),
		}
		for _, l := range lines {
			if strings.HasPrefix(l, q1Prefix) {
				r.Found = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(l, q1Prefix), " "))
				break
			}
		}
		return r
	}
}

// checkRanked verifies one "Top Game i: NAME (VALUE)" line per entry.
func checkRanked(query uint8, names, values []string) check {
	return func(lines []string) QueryReport {
		r := QueryReport{Query: query}
		for i := range names {
			want := fmt.Sprintf("[QUERY %d]: Top Game %d: %s (%s)", query, i+1, names[i], values[i])
			if !hasLineWithPrefix(lines, want) {
				r.Missing = append(r.Missing, want)
			}
		}
		return r
	}
}

// checkPartial verifies one partial line per entry and that no extra partial lines exist.
func checkPartial(query uint8, prefix string, wants []string) check {
	return func(lines []string) QueryReport {
		r := QueryReport{Query: query, ExpectedCount: len(wants), counted: true}
		for _, want := range wants {
			if !hasLineWithPrefix(lines, want) {
				r.Missing = append(r.Missing, want)
			}
		}
		r.FoundCount = countPrefix(lines, prefix)
		return r
	}
}

// checks builds the checks for every query present in e, keyed by query number.
func checks(e Expected) map[uint8]check {
	out := map[uint8]check{}
	if e.Q1 != nil {
		out[1] = checkQ1(*e.Q1)
	}
	if e.Q2 != nil {
		names, values := make([]string, len(e.Q2)), make([]string, len(e.Q2))
		for i, g := range e.Q2 {
			names[i], values[i] = g.Name, g.Playtime.String()
		}
		out[2] = checkRanked(2, names, values)
	}
	if e.Q3 != nil {
		names, values := make([]string, len(e.Q3)), make([]string, len(e.Q3))
		for i, g := range e.Q3 {
			names[i], values[i] = g.Name, g.PositiveScore.String()
		}
		out[3] = checkRanked(3, names, values)
	}
	if e.Q4 != nil {
		wants := make([]string, len(e.Q4))
		for i, g := range e.Q4 {
			wants[i] = q4Prefix + " " + g.Name
		}
		out[4] = checkPartial(4, q4Prefix, wants)
	}
	if e.Q5 != nil {
		wants := make([]string, len(e.Q5))
		for i, g := range e.Q5 {
			wants[i] = fmt.Sprintf("%s %s (%s)", q5Prefix, g.Name, g.Count)
		}
		out[5] = checkPartial(5, q5Prefix, wants)
	}
	return out
}

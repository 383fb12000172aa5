// Package oracle checks the results emitted by a run against the expected
// answers of each query. Every query check is a unit of work tagged with
// the correlation of (client, query) and runs through a lite pipeline.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/ib-77/pipetag/internal/log"
	"github.com/ib-77/pipetag/pkg/cid"
	"github.com/ib-77/pipetag/pkg/rop/core"
	"github.com/ib-77/pipetag/pkg/rop/lite"
	"github.com/ib-77/pipetag/pkg/stage"
)

type Verifier struct {
	fs       afero.Fs
	logger   log.Logger
	clientID uint16
	workers  int
}

type Option func(v *Verifier)

func WithClientID(id uint16) Option {
	return func(v *Verifier) { v.clientID = id }
}

// WithWorkers sets how many checks run at once. A worker count stored in the
// context with core.WithWorkerOptions takes precedence.
func WithWorkers(n int) Option {
	return func(v *Verifier) { v.workers = n }
}

func NewVerifier(fs afero.Fs, logger log.Logger, opts ...Option) *Verifier {
	v := &Verifier{fs: fs, logger: logger, workers: 1}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Entry is the report of one query check with the correlation it ran under.
type Entry struct {
	QueryReport
	Correlation cid.ID
}

type Report struct {
	Entries []Entry
}

func (r Report) Passed() bool {
	for _, e := range r.Entries {
		if !e.Passed() {
			return false
		}
	}
	return true
}

// Verify reads both files and checks every query present in the expected answers.
func (v *Verifier) Verify(ctx context.Context, resultsPath, expectedPath string) (Report, error) {
	raw, err := afero.ReadFile(v.fs, expectedPath)
	if err != nil {
		return Report{}, fmt.Errorf("cannot read expected results: %w", err)
	}
	expected, err := ParseExpected(raw)
	if err != nil {
		return Report{}, err
	}

	results, err := afero.ReadFile(v.fs, resultsPath)
	if err != nil {
		return Report{}, fmt.Errorf("cannot read results: %w", err)
	}

	return v.Check(ctx, expected, strings.Split(string(results), "\n"))
}

// Check runs the checks of expected over lines.
func (v *Verifier) Check(ctx context.Context, expected Expected, lines []string) (Report, error) {
	all := checks(expected)
	queries := make([]uint8, 0, len(all))
	for q := range all {
		queries = append(queries, q)
	}
	slices.Sort(queries)

	work := make([]core.Tagged[check], 0, len(queries))
	for _, q := range queries {
		id := cid.Pack(cid.Fields{ClientID: v.clientID, QueryID: q})
		work = append(work, core.Tagged[check]{Correlation: id, Value: all[q]})
	}

	out := lite.Turnout(ctx,
		lite.Run(ctx, core.ToChanTagged(ctx, work), stage.Inspect[check](v.logger, "checking query"), 1),
		lite.Map(func(_ context.Context, c check) QueryReport { return c(lines) }),
		core.GetWorkerMaxCount(ctx, v.workers))

	report := Report{}
	var errs []error
	for r := range out {
		if !r.IsSuccess() {
			errs = append(errs, fmt.Errorf("query %d: %w", r.Correlation().QueryID(), r.Err()))
			continue
		}
		entry := Entry{QueryReport: r.Result(), Correlation: r.Correlation()}
		v.logger.With(log.Correlation(entry.Correlation), zap.Bool("passed", entry.Passed())).
			Infof("query %d checked", entry.Query)
		report.Entries = append(report.Entries, entry)
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}
	if len(errs) > 0 {
		return report, errors.Join(errs...)
	}

	slices.SortFunc(report.Entries, func(a, b Entry) int { return int(a.Query) - int(b.Query) })
	return report, nil
}

// Render writes the report in the same shape the checks are described in.
func (r Report) Render(w io.Writer) error {
	var b strings.Builder
	for i, e := range r.Entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Checking q%d... (correlation %s)\n", e.Query, e.Correlation)
		if e.Expected != e.Found {
			fmt.Fprintf(&b, "Expected: %s\nFound: %s\n", e.Expected, e.Found)
		}
		for _, m := range e.Missing {
			fmt.Fprintf(&b, "Expected: %s\n", m)
		}
		if e.counted && e.ExpectedCount != e.FoundCount {
			fmt.Fprintf(&b, "Expected total games: %d\nFound total games: %d\n", e.ExpectedCount, e.FoundCount)
		}
		if e.Passed() {
			fmt.Fprintf(&b, "q%d is correct\n", e.Query)
		} else {
			fmt.Fprintf(&b, "q%d is incorrect\n", e.Query)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

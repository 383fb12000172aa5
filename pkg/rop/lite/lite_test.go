package lite

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/pipetag/pkg/cid"
	"github.com/ib-77/pipetag/pkg/rop"
	"github.com/ib-77/pipetag/pkg/rop/core"
	"github.com/ib-77/pipetag/pkg/rop/mass"
)

func Test_Parallel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	source := []int{10, 5, 1, 20, 2}

	ctx = core.WithProcessOptions(core.WithWorkerOptions(ctx, 2), true)
	workers := core.GetWorkerMaxCount(ctx, 5)

	finallyHandlers := mass.FinallyHandlers[int, int]{
		OnSuccess: func(ctx context.Context, in int) int {
			return in
		},
		OnError: func(ctx context.Context, err error) int {
			return -1
		},
		OnCancel: func(ctx context.Context, err error) int {
			return -2
		},
	}

	ch := Finally(
		ctx,
		Turnout(
			ctx,
			Run(
				ctx,
				core.ToChanManyResults[int](ctx, source),
				Validate(
					func(ctx context.Context, in int) (valid bool, errMsg string) {
						if in != 1 {
							return true, ""
						}
						return false, "value should not be 1"
					}),
				workers),
			Switch(
				func(ctx context.Context, r int) rop.Result[int] {
					return rop.Success[int](r + 1000)
				},
			), 2),
		finallyHandlers)

	var got []int
	for v := range ch {
		got = append(got, v)
	}
	sort.Ints(got)

	assert.Equal(t, []int{-1, 1002, 1005, 1010, 1020}, got)
}

// Test Run function with single worker
func TestProcess_SingleWorker(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	input := []int{1, 2, 3, 4, 5}
	expected := []int{2, 4, 6, 8, 10}

	resultCh := Run(ctx, core.ToChanManyResults(ctx, input), Map(func(_ context.Context, r int) int { return r * 2 }), 1)

	var results []int
	for result := range resultCh {
		if result.IsSuccess() {
			results = append(results, result.Result())
		} else {
			t.Errorf("Unexpected error: %v", result.Err())
		}
	}

	sort.Ints(results)
	assert.Equal(t, expected, results)
}

// Every unit of work keeps its correlation through a multi-line, multi-stage pipeline.
func TestPipeline_CorrelationSurvivesStages(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var tagged []core.Tagged[int]
	want := map[int]cid.ID{}
	for i := range 50 {
		id := cid.MustEncode(i+1, 1, i%4, i*10)
		tagged = append(tagged, core.Tagged[int]{Correlation: id, Value: i})
		want[i] = id
	}

	type pair struct {
		value int
		id    cid.ID
	}

	out := Turnout(ctx,
		Turnout(ctx,
			Run(ctx, core.ToChanTagged(ctx, tagged),
				Tee(func(_ context.Context, r rop.Result[int]) {}), 4),
			Try(func(_ context.Context, v int) (string, error) {
				if v%10 == 9 {
					return "", fmt.Errorf("value %d rejected", v)
				}
				return strconv.Itoa(v), nil
			}), 3),
		Map(func(_ context.Context, s string) int {
			n, _ := strconv.Atoi(s)
			return n
		}), 2)

	var pairs []pair
	failures := 0
	for r := range out {
		if r.IsSuccess() {
			pairs = append(pairs, pair{value: r.Result(), id: r.Correlation()})
			continue
		}
		failures++
		assert.NotZero(t, r.Correlation())
	}

	assert.Equal(t, 5, failures)
	require.Len(t, pairs, 45)
	for _, p := range pairs {
		assert.Equal(t, want[p.value], p.id, "value %d", p.value)
		assert.Equal(t, uint8(p.value%4), p.id.ShardID())
	}
}

func TestDrain_EmitsCancelledForQueuedValues(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan rop.Result[int], 10)
	for i := range 10 {
		in <- rop.Tagged(cid.MustEncode(1, 2, 3, i), i)
	}
	close(in)

	var once sync.Once
	stall := func(_ context.Context, input rop.Result[int]) <-chan rop.Result[string] {
		once.Do(cancel)
		return make(chan rop.Result[string])
	}

	var got []rop.Result[string]
	for r := range Drain(ctx, in, stall, 1) {
		got = append(got, r)
	}

	require.Len(t, got, 10)
	seen := map[uint32]bool{}
	for _, r := range got {
		assert.True(t, r.IsCancel())
		assert.True(t, errors.Is(r.Err(), core.ErrCancelled))
		seen[r.Correlation().AppID()] = true
	}
	assert.Len(t, seen, 10)
}

func TestDoubleMapAndDoubleTee(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var mu sync.Mutex
	var errs []string

	out := Turnout(ctx,
		Run(ctx, core.ToChanManyResults(ctx, []int{1, 0}),
			Switch(func(_ context.Context, v int) rop.Result[int] {
				if v == 0 {
					return rop.Fail[int](errors.New("zero"))
				}
				return rop.Success(v)
			}), 1),
		DoubleMap(
			func(_ context.Context, v int) string { return "ok" },
			func(_ context.Context, err error) string { return "err" },
			func(_ context.Context, err error) string { return "cancel" }), 1)

	teed := Run(ctx, out, DoubleTee(
		func(_ context.Context, v string) {},
		func(_ context.Context, err error) {
			mu.Lock()
			errs = append(errs, err.Error())
			mu.Unlock()
		},
		func(_ context.Context, err error) {}), 1)

	results := core.FromChanMany(ctx, teed)
	assert.Len(t, results, 2)
	assert.Equal(t, []string{"zero"}, errs)
}

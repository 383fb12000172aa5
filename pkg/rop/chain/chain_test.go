package chain

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/ib-77/pipetag/pkg/cid"
	"github.com/ib-77/pipetag/pkg/rop"
)

func TestFromValue(t *testing.T) {
	t.Parallel()

	out := FromValue(context.Background(), 7).Result()
	if !out.IsSuccess() || out.Result() != 7 {
		t.Fatalf("expected success with 7, got: success=%v, val=%v, err=%v", out.IsSuccess(), out.Result(), out.Err())
	}
	if !out.Correlation().IsZero() {
		t.Fatalf("expected untagged result, got %v", out.Correlation())
	}
}

func TestTagged_CorrelationSurvivesTypeChanges(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	id := cid.MustEncode(300, 2, 7, 123456)

	c := Map(
		ThenTry(
			Then(Tagged(ctx, id, "41"), func(_ context.Context, s string) rop.Result[string] {
				return rop.Success(s + "1")
			}),
			func(_ context.Context, s string) (int, error) { return strconv.Atoi(s) }),
		func(_ context.Context, v int) float64 { return float64(v) / 2 })

	if got := c.Result().Result(); got != 205.5 {
		t.Fatalf("expected 205.5, got %v", got)
	}
	if c.Correlation() != id {
		t.Fatalf("expected correlation %v, got %v", id, c.Correlation())
	}
	if c.Correlation().ShardID() != 7 {
		t.Fatalf("expected shard 7, got %d", c.Correlation().ShardID())
	}
}

func TestThen_ShortCircuitOnFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	id := cid.MustEncode(1, 1, 1, 1)
	c := Start(ctx, rop.Tag(id, rop.Fail[int](errors.New("boom"))))

	called := false
	c = Then(c, func(_ context.Context, v int) rop.Result[int] {
		called = true
		return rop.Success(v + 1)
	})

	out := c.Result()
	if out.IsSuccess() || out.Err() == nil || out.Err().Error() != "boom" {
		t.Fatalf("expected failure 'boom', got: success=%v, err=%v", out.IsSuccess(), out.Err())
	}
	if called {
		t.Fatalf("onSuccess should not be called when initial result is failure")
	}
	if out.Correlation() != id {
		t.Fatalf("failure lost its correlation")
	}
}

func TestValidateAndEnsure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ensured := 0

	ok := FromValue(ctx, 4).
		Validate(func(_ context.Context, v int) (bool, string) { return v%2 == 0, "odd" }).
		Ensure(func(_ context.Context, v int) { ensured += v })
	if !ok.Result().IsSuccess() || ensured != 4 {
		t.Fatalf("expected success and ensure to run, got %v / %d", ok.Result().Err(), ensured)
	}

	bad := FromValue(ctx, 3).
		Validate(func(_ context.Context, v int) (bool, string) { return v%2 == 0, "odd" }).
		Ensure(func(_ context.Context, v int) { ensured += v })
	if bad.Result().Err() == nil || bad.Result().Err().Error() != "odd" {
		t.Fatalf("expected 'odd', got %v", bad.Result().Err())
	}
	if ensured != 4 {
		t.Fatalf("ensure must not run on failure")
	}
}

func TestFinally(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	render := func(c *Chain[int]) string {
		return Finally(c,
			func(_ context.Context, v int) string { return "ok " + strconv.Itoa(v) },
			func(_ context.Context, err error) string { return "failed " + err.Error() },
			func(_ context.Context, err error) string { return "cancelled" })
	}

	if got := render(FromValue(ctx, 1)); got != "ok 1" {
		t.Fatalf("unexpected %q", got)
	}
	if got := render(Start(ctx, rop.Fail[int](errors.New("x")))); got != "failed x" {
		t.Fatalf("unexpected %q", got)
	}
	if got := render(Start(ctx, rop.Cancel[int](context.Canceled))); got != "cancelled" {
		t.Fatalf("unexpected %q", got)
	}
}

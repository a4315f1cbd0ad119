package reduce

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	apperrors "github.com/kbukum/stdmath/errors"
	"github.com/kbukum/stdmath/logger"
	"github.com/kbukum/stdmath/pipeline"
)

// countingIter yields items and records how many were pulled and whether it
// was closed.
type countingIter[T any] struct {
	items  []T
	pulled int
	closed bool
}

func (it *countingIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.pulled >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	v := it.items[it.pulled]
	it.pulled++
	return v, true, nil
}

func (it *countingIter[T]) Close() error {
	it.closed = true
	return nil
}

type failingIter struct {
	after int
	n     int
}

func (it *failingIter) Next(_ context.Context) (int, bool, error) {
	if it.n == it.after {
		return 0, false, errors.New("disk on fire")
	}
	it.n++
	return it.n, true, nil
}

func (it *failingIter) Close() error { return nil }

func TestSum_Exact(t *testing.T) {
	state, err := Sum(context.Background(), pipeline.Range[int64](1, 10))
	if err != nil {
		t.Fatal(err)
	}
	if !state.IsOk() || state.Value() != 55 {
		t.Errorf("expected Ok(55), got %s", state)
	}
}

func TestProd_Exact(t *testing.T) {
	state, err := Prod(context.Background(), pipeline.Range[uint64](1, 10))
	if err != nil {
		t.Fatal(err)
	}
	if !state.IsOk() || state.Value() != 3628800 {
		t.Errorf("expected Ok(3628800), got %s", state)
	}
}

func TestSum_Float(t *testing.T) {
	state, _ := Sum(context.Background(), pipeline.FromSlice([]float64{0.5, 0.25, 0.125}))
	if !state.IsOk() || state.Value() != 0.875 {
		t.Errorf("expected Ok(0.875), got %s", state)
	}
	state, _ = Sum(context.Background(), pipeline.FromSlice([]float64{math.MaxFloat64, math.MaxFloat64}))
	if !state.IsOverflow() {
		t.Errorf("expected float overflow, got %s", state)
	}
}

func TestIdentityElements(t *testing.T) {
	ctx := context.Background()
	sum, err := Sum(ctx, pipeline.FromSlice([]int{}))
	if err != nil || !sum.IsOk() || sum.Value() != 0 {
		t.Errorf("empty sum: got %s, %v; want Ok(0)", sum, err)
	}
	prod, err := Prod(ctx, pipeline.FromSlice([]int{}))
	if err != nil || !prod.IsOk() || prod.Value() != 1 {
		t.Errorf("empty product: got %s, %v; want Ok(1)", prod, err)
	}
}

func TestSum_BoundaryOverflow(t *testing.T) {
	state, err := Sum(context.Background(), pipeline.FromSlice([]int8{math.MaxInt8, 1}))
	if err != nil {
		t.Fatal(err)
	}
	at, ok := state.At()
	if !ok || at != 1 {
		t.Fatalf("expected overflow at 1, got %s", state)
	}
	if state.Value() != math.MaxInt8 {
		t.Errorf("expected partial %d, got %d", math.MaxInt8, state.Value())
	}
	if state.Index() != 1 {
		t.Errorf("expected index 1, got %d", state.Index())
	}
	if state.String() != "Overflow{at: 1, partial: 127, index: 1}" {
		t.Errorf("unexpected String() %q", state.String())
	}
}

func TestShortCircuit_StopsPulling(t *testing.T) {
	src := &countingIter[uint8]{items: []uint8{100, 100, 100, 1, 2, 3}}
	state, err := Sum(context.Background(), pipeline.From[uint8](src))
	if err != nil {
		t.Fatal(err)
	}
	if !state.IsOverflow() || state.Index() != 2 {
		t.Fatalf("expected overflow at index 2, got %s", state)
	}
	if src.pulled != 3 {
		t.Errorf("expected 3 elements pulled, got %d", src.pulled)
	}
	if !src.closed {
		t.Error("expected source to be closed")
	}
}

func TestShortCircuit_InfiniteSource(t *testing.T) {
	pulled := 0
	src := pipeline.Generate(func(int) int32 {
		pulled++
		return 1 << 20
	})
	state, err := Prod(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if !state.IsOverflow() {
		t.Fatalf("expected overflow, got %s", state)
	}
	// 1 * 2^20 fits, 2^40 does not.
	if state.Index() != 1 || pulled != 2 {
		t.Errorf("expected stop at index 1 after 2 pulls, got index %d after %d", state.Index(), pulled)
	}
	if state.Value() != 1<<20 {
		t.Errorf("expected partial 2^20, got %d", state.Value())
	}
}

func TestCustom_AlwaysOverflow(t *testing.T) {
	never := Custom("never", func(acc int, _ int) (int, bool) { return acc, false })
	src := &countingIter[int]{items: []int{9, 8, 7, 6}}
	state, err := SigmaOf(pipeline.From[int](src), 42, never).Reduce(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	at, _ := state.At()
	if !state.IsOverflow() || at != 9 || state.Value() != 42 || state.Index() != 0 {
		t.Errorf("expected Overflow{at: 9, partial: 42, index: 0}, got %s", state)
	}
	if src.pulled != 1 {
		t.Errorf("expected one pull, got %d", src.pulled)
	}
}

func TestCustom_CapturingCombinator(t *testing.T) {
	// Sum of string lengths capped at a captured budget.
	budget := 10
	capped := Custom("length_budget", func(acc int, s string) (int, bool) {
		n := acc + len(s)
		return n, n <= budget
	})
	state, _ := SigmaOf(pipeline.FromSlice([]string{"abc", "defg", "hijk"}), 0, capped).Reduce(context.Background())
	at, _ := state.At()
	if !state.IsOverflow() || at != "hijk" || state.Value() != 7 {
		t.Errorf("expected overflow at hijk with partial 7, got %s", state)
	}
	if capped.Kind() != KindCustom || capped.Name() != "length_budget" {
		t.Errorf("unexpected method identity %s/%s", capped.Kind(), capped.Name())
	}
}

func TestMethodKinds(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindCheckedAdd, "checked_add"},
		{KindCheckedMul, "checked_mul"},
		{KindCustom, "custom"},
		{Kind(0), "unknown"},
	}
	for _, tc := range tests {
		if tc.kind.String() != tc.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tc.kind, tc.kind.String(), tc.want)
		}
	}
	if CheckedAdd[int]().Kind() != KindCheckedAdd || CheckedMul[int]().Name() != "checked_mul" {
		t.Error("built-in methods report the wrong identity")
	}
	if Custom[int, int]("", nil).Name() != "custom" {
		t.Error("unnamed custom method should fall back to 'custom'")
	}
}

func TestFold_ZeroMethod(t *testing.T) {
	var m Method[int, int]
	_, err := Fold(context.Background(), pipeline.FromSlice([]int{1}).Iter(context.Background()), m, NewContext[int](0))
	if !apperrors.IsCode(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for a zero Method, got %v", err)
	}
}

func TestContext_Terminality(t *testing.T) {
	rc := NewContext[int8, int8](0)
	rc.RecordStep(100)
	rc.RecordOverflow(50, 100, 1)
	first := rc.Current()

	rc.RecordStep(3)
	rc.RecordOverflow(9, 9, 9)
	for i := 0; i < 3; i++ {
		if got := rc.Current(); got != first {
			t.Fatalf("terminal state changed: %s -> %s", first, got)
		}
	}
	if rc.Steps() != 1 {
		t.Errorf("steps after overflow should not grow, got %d", rc.Steps())
	}
}

func TestContext_RejectsReuse(t *testing.T) {
	ctx := context.Background()
	sigma := NewSigma(pipeline.Range(1, 3))
	rc := NewContext[int](0)

	if _, err := sigma.ReduceWith(ctx, rc); err != nil {
		t.Fatal(err)
	}
	_, err := sigma.ReduceWith(ctx, rc)
	if !apperrors.IsCode(err, apperrors.ErrCodeContextReused) {
		t.Fatalf("expected CONTEXT_REUSED, got %v", err)
	}

	oldID := rc.ID()
	rc.Reset(100)
	if rc.ID() == oldID {
		t.Error("Reset should assign a new run ID")
	}
	state, err := sigma.ReduceWith(ctx, rc)
	if err != nil {
		t.Fatal(err)
	}
	if state.Value() != 106 {
		t.Errorf("expected 100+6 from the reset initial value, got %s", state)
	}
}

func TestContext_PoisonedAfterPanic(t *testing.T) {
	boom := Custom("boom", func(acc int, elem int) (int, bool) {
		if elem == 2 {
			panic("combinator bug")
		}
		return acc + elem, true
	})
	rc := NewContext[int](0)

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		_, _ = SigmaOf(pipeline.Range(1, 3), 0, boom).ReduceWith(context.Background(), rc)
	}()

	if !rc.Poisoned() {
		t.Fatal("expected Context to be poisoned")
	}
	_, err := NewSigma(pipeline.Range(1, 3)).ReduceWith(context.Background(), rc)
	if !apperrors.IsCode(err, apperrors.ErrCodeContextReused) {
		t.Errorf("expected poisoned Context to be rejected, got %v", err)
	}
	rc.Reset(0)
	if rc.Poisoned() {
		t.Error("Reset should clear the poisoned flag")
	}
}

func TestSourceFailure(t *testing.T) {
	state, err := Sum(context.Background(), pipeline.From[int](&failingIter{after: 3}))
	if !apperrors.IsCode(err, apperrors.ErrCodeSourceFailed) {
		t.Fatalf("expected SOURCE_FAILED, got %v", err)
	}
	if !state.IsOk() || state.Value() != 6 {
		t.Errorf("expected partial Ok(6) before failure, got %s", state)
	}
}

func TestCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Sum(ctx, pipeline.Repeat(1))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}

func TestSigma_ReusableDescriptor(t *testing.T) {
	sigma := NewSigma(pipeline.Map(pipeline.Range[uint32](1, 10), func(_ context.Context, n uint32) (uint32, error) {
		return n * n, nil
	}))
	for i := 0; i < 2; i++ {
		state, err := sigma.Reduce(context.Background())
		if err != nil || state.Value() != 385 {
			t.Fatalf("run %d: expected Ok(385), got %s, %v", i, state, err)
		}
	}
}

func TestProductOf_MixedTypes(t *testing.T) {
	// Product of element lengths accumulated into uint8.
	mul := Custom("len_product", func(acc uint8, s string) (uint8, bool) {
		if len(s) > math.MaxUint8 {
			return acc, false
		}
		return checkedMulU8(acc, uint8(len(s)))
	})
	state, _ := ProductOf(pipeline.FromSlice([]string{"ab", "cde", "fghi"}), uint8(1), mul).Reduce(context.Background())
	if !state.IsOk() || state.Value() != 24 {
		t.Errorf("expected Ok(24), got %s", state)
	}
}

func checkedMulU8(a, b uint8) (uint8, bool) {
	return CheckedMul[uint8]().Apply(a, b)
}

func TestStateResultAndErr(t *testing.T) {
	ok := Ok[int](5)
	if v, err := ok.Result(); err != nil || v != 5 {
		t.Errorf("Ok.Result() = %d, %v", v, err)
	}
	if ok.Err() != nil || ok.Index() != -1 {
		t.Error("Ok state has no error and no index")
	}
	if _, isOver := ok.At(); isOver {
		t.Error("Ok state has no overflow element")
	}

	over := Overflow[int, int](3, 250, 4)
	_, err := over.Result()
	appErr, isApp := apperrors.AsAppError(err)
	if !isApp || appErr.Code != apperrors.ErrCodeArithmeticOverflow {
		t.Fatalf("expected ARITHMETIC_OVERFLOW, got %v", err)
	}
	if appErr.Details["partial"] != 250 || appErr.Details["at"] != 3 {
		t.Errorf("unexpected details %v", appErr.Details)
	}
	if !strings.Contains(over.ErrFor("factorial").Error(), "factorial overflowed") {
		t.Errorf("ErrFor should name the operation: %v", over.ErrFor("factorial"))
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: logger.FormatJSON}, "", &buf)

	_, err := Sum(context.Background(), pipeline.FromSlice([]int8{100, 100}), WithLogger(log), WithName("budget"))
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`"message":"reduction overflowed"`, `"operation":"budget"`, `"status":"overflow"`, `"index":1`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in log output %q", want, out)
		}
	}
}

func TestWithObserver(t *testing.T) {
	var reports []Report
	obs := ObserverFunc(func(_ context.Context, r Report) { reports = append(reports, r) })

	ctx := context.Background()
	_, _ = Sum(ctx, pipeline.Range(1, 4), WithObserver(obs))
	_, _ = Prod(ctx, pipeline.FromSlice([]int8{64, 2}), WithObserver(obs))
	_, _ = Sum(ctx, pipeline.From[int](&failingIter{after: 1}), WithObserver(obs))

	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}
	if reports[0].Operation != "sigma" || reports[0].Steps != 4 || reports[0].Status() != "ok" {
		t.Errorf("unexpected sigma report %+v", reports[0])
	}
	if reports[1].Operation != "product" || reports[1].Method != KindCheckedMul || reports[1].Status() != "overflow" {
		t.Errorf("unexpected product report %+v", reports[1])
	}
	if reports[2].Status() != "error" {
		t.Errorf("expected error status, got %+v", reports[2])
	}
	if reports[0].RunID == reports[1].RunID {
		t.Error("each run should have its own ID")
	}
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// trackingIter counts pulls and records Close.
type trackingIter struct {
	items  []int
	pulled int
	closed bool
}

func (it *trackingIter) Next(_ context.Context) (int, bool, error) {
	if it.pulled >= len(it.items) {
		return 0, false, nil
	}
	v := it.items[it.pulled]
	it.pulled++
	return v, true, nil
}

func (it *trackingIter) Close() error {
	it.closed = true
	return nil
}

func TestFromSlice_Collect(t *testing.T) {
	tests := []struct {
		name  string
		items []int
	}{
		{"values", []int{3, 1, 2}},
		{"empty", []int{}},
		{"nil", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Collect(context.Background(), FromSlice(tc.items))
			if err != nil {
				t.Fatal(err)
			}
			if !intSliceEqual(got, tc.items) {
				t.Errorf("got %v, want %v", got, tc.items)
			}
		})
	}
}

func TestFrom_ClosesSource(t *testing.T) {
	src := &trackingIter{items: []int{4, 5}}
	got, err := Collect(context.Background(), From[int](src))
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{4, 5}) {
		t.Errorf("got %v, want [4 5]", got)
	}
	if !src.closed {
		t.Error("Collect should close the iterator")
	}
}

func TestIter_FreshPass(t *testing.T) {
	p := FromSlice([]int{1, 2})
	ctx := context.Background()

	for pass := 0; pass < 2; pass++ {
		iter := p.Iter(ctx)
		var got []int
		for {
			v, ok, err := iter.Next(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if !ok {
				break
			}
			got = append(got, v)
		}
		_ = iter.Close()
		if !intSliceEqual(got, []int{1, 2}) {
			t.Errorf("pass %d: got %v, want [1 2]", pass, got)
		}
	}
}

func TestMap(t *testing.T) {
	squares := Map(Range(1, 4), func(_ context.Context, n int) (int, error) {
		return n * n, nil
	})
	got, err := Collect(context.Background(), squares)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 4, 9, 16}) {
		t.Errorf("got %v, want [1 4 9 16]", got)
	}
}

func TestMap_ChangesType(t *testing.T) {
	labels := Map(Range[uint8](1, 3), func(_ context.Context, n uint8) (string, error) {
		return fmt.Sprintf("k=%d", n), nil
	})
	got, err := Collect(context.Background(), labels)
	if err != nil {
		t.Fatal(err)
	}
	if !strSliceEqual(got, []string{"k=1", "k=2", "k=3"}) {
		t.Errorf("got %v", got)
	}
}

func TestMap_ErrorStopsPulling(t *testing.T) {
	src := &trackingIter{items: []int{1, 2, 3, 4}}
	failing := Map(From[int](src), func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, errors.New("bad element")
		}
		return n, nil
	})
	got, err := Collect(context.Background(), failing)
	if err == nil {
		t.Fatal("expected error")
	}
	if !intSliceEqual(got, []int{1}) {
		t.Errorf("expected [1] before the error, got %v", got)
	}
	if src.pulled != 2 {
		t.Errorf("pulled %d elements, want 2", src.pulled)
	}
	if !src.closed {
		t.Error("source should be closed after the error")
	}
}

func TestFilter(t *testing.T) {
	odd := Filter(Range(1, 9), func(n int) bool { return n%2 == 1 })
	got, err := Collect(context.Background(), odd)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 3, 5, 7, 9}) {
		t.Errorf("got %v", got)
	}

	none, _ := Collect(context.Background(), Filter(Range(1, 3), func(int) bool { return false }))
	if len(none) != 0 {
		t.Errorf("expected nothing, got %v", none)
	}
}

func TestConcat(t *testing.T) {
	segments := Concat(Range(1, 3), Range(10, 9), Range(7, 8))
	got, err := Collect(context.Background(), segments)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 2, 3, 7, 8}) {
		t.Errorf("got %v, want [1 2 3 7 8]", got)
	}
}

func TestConcat_LaterSegmentsNotPulled(t *testing.T) {
	second := &trackingIter{items: []int{100}}
	joined := Concat(FromSlice([]int{1, 2}), From[int](second))

	got, err := Collect(context.Background(), Take(joined, 2))
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 2}) {
		t.Errorf("got %v, want [1 2]", got)
	}
	if second.pulled != 0 {
		t.Errorf("second segment pulled %d times, want 0", second.pulled)
	}
	if !second.closed {
		t.Error("Concat should close every segment")
	}
}

func TestConcat_Empty(t *testing.T) {
	got, err := Collect(context.Background(), Concat[int]())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected nothing, got %v", got)
	}
}

func TestChained_Adapters(t *testing.T) {
	// 1..10 without 5, squared, back to front, first three.
	p := Take(Reverse(Map(Exclude(Range(1, 10), 5), func(_ context.Context, n int) (int, error) {
		return n * n, nil
	})), 3)
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{100, 81, 64}) {
		t.Errorf("got %v, want [100 81 64]", got)
	}
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func strSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

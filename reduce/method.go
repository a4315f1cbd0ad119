package reduce

import "github.com/kbukum/stdmath/checked"

// Kind identifies the combining semantics of a Method.
type Kind uint8

const (
	// KindCheckedAdd sums with overflow detection.
	KindCheckedAdd Kind = iota + 1
	// KindCheckedMul multiplies with overflow detection.
	KindCheckedMul
	// KindCustom delegates to a caller-supplied combinator.
	KindCustom
)

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindCheckedAdd:
		return "checked_add"
	case KindCheckedMul:
		return "checked_mul"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Combinator folds one element into the accumulator. It returns false when
// the combination overflows; the returned accumulator is then ignored.
type Combinator[T, R any] func(acc R, elem T) (R, bool)

// Method selects how a reduction combines its running total with the next
// element. Methods hold no per-run state and can be shared between
// reductions.
type Method[T, R any] struct {
	kind    Kind
	name    string
	combine Combinator[T, R]
}

// CheckedAdd returns the Method that sums elements and reports overflow
// when a sum leaves N's representable range.
func CheckedAdd[N checked.Number]() Method[N, N] {
	return Method[N, N]{kind: KindCheckedAdd, name: KindCheckedAdd.String(), combine: checked.Add[N]}
}

// CheckedMul returns the Method that multiplies elements and reports
// overflow when a product leaves N's representable range.
func CheckedMul[N checked.Number]() Method[N, N] {
	return Method[N, N]{kind: KindCheckedMul, name: KindCheckedMul.String(), combine: checked.Mul[N]}
}

// Custom wraps fn as a Method. fn's overflow decision is final: the engine
// never second-guesses it. fn may capture state, but must not rely on
// native wraparound to signal failure.
func Custom[T, R any](name string, fn Combinator[T, R]) Method[T, R] {
	if name == "" {
		name = KindCustom.String()
	}
	return Method[T, R]{kind: KindCustom, name: name, combine: fn}
}

// Kind returns the method's kind.
func (m Method[T, R]) Kind() Kind { return m.kind }

// Name returns the method's name; built-ins are named after their kind.
func (m Method[T, R]) Name() string { return m.name }

// Apply combines acc with elem.
func (m Method[T, R]) Apply(acc R, elem T) (R, bool) {
	return m.combine(acc, elem)
}

func (m Method[T, R]) valid() bool { return m.combine != nil }

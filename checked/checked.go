package checked

import "math"

// Signed is the set of signed integer types.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the set of unsigned integer types.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is the set of integer types.
type Integer interface {
	Signed | Unsigned
}

// Float is the set of floating point types.
type Float interface {
	~float32 | ~float64
}

// Number is every type the checked operations accept.
type Number interface {
	Integer | Float
}

// IsFloat reports whether N is a floating point type.
func IsFloat[N Number]() bool {
	// 1/2 truncates to zero for every integer type.
	one, two := N(1), N(2)
	return one/two != 0
}

// IsSigned reports whether N can represent negative values.
func IsSigned[N Number]() bool {
	var zero N
	return zero-1 < zero
}

// Max returns the largest value representable by N.
func Max[N Integer]() N {
	if !IsSigned[N]() {
		return ^N(0)
	}
	// Walk up to the highest power of two below the sign bit.
	v := N(1)
	for v<<1 > 0 {
		v <<= 1
	}
	return v - 1 + v
}

// Min returns the smallest value representable by N.
func Min[N Integer]() N {
	if IsSigned[N]() {
		return -Max[N]() - 1
	}
	return 0
}

// Add returns a+b and whether the sum is representable.
func Add[N Number](a, b N) (N, bool) {
	s := a + b
	if IsFloat[N]() {
		return s, !isInf(s) || isInf(a) || isInf(b)
	}
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return s, false
	}
	return s, true
}

// Sub returns a-b and whether the difference is representable.
func Sub[N Number](a, b N) (N, bool) {
	d := a - b
	if IsFloat[N]() {
		return d, !isInf(d) || isInf(a) || isInf(b)
	}
	if (b > 0 && d > a) || (b < 0 && d < a) {
		return d, false
	}
	return d, true
}

// Mul returns a*b and whether the product is representable.
func Mul[N Number](a, b N) (N, bool) {
	p := a * b
	if IsFloat[N]() {
		return p, !isInf(p) || isInf(a) || isInf(b)
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	// MinInt * -1 wraps to MinInt and MinInt / -1 == MinInt, so the
	// division check below cannot see it.
	var zero N
	if IsSigned[N]() && b == zero-1 && a == -a {
		return p, false
	}
	if p/b != a {
		return p, false
	}
	return p, true
}

// Pow returns base**exp and whether the power is representable.
// Pow(0, 0) is 1.
func Pow[N Number](base N, exp uint) (N, bool) {
	result := N(1)
	for exp > 0 {
		var ok bool
		if exp&1 == 1 {
			if result, ok = Mul(result, base); !ok {
				return result, false
			}
		}
		exp >>= 1
		if exp == 0 {
			break
		}
		if base, ok = Mul(base, base); !ok {
			return base, false
		}
	}
	return result, true
}

// Convert converts n to R and reports whether the value survived the
// conversion unchanged.
func Convert[R, N Integer](n N) (R, bool) {
	r := R(n)
	if N(r) != n {
		return r, false
	}
	// Same bit pattern, different sign interpretation.
	if (r < 0) != (n < 0) {
		return r, false
	}
	return r, true
}

func isInf[N Number](v N) bool {
	return math.IsInf(float64(v), 0)
}

package rank

import "fmt"

// First returns the key assigned to the first entry of an empty sequence:
// the integer zero, "a0".
func First() Key {
	return "a0"
}

// Between returns a key sorting strictly between a and b.
//
// A zero bound is open: Between(zero, b) produces a key below b,
// Between(a, zero) a key above a, and Between(zero, zero) returns
// First(). With both bounds given, a must sort strictly before b; bounds
// out of order or malformed keys are the only error conditions.
//
// Between is deterministic and picks digit midpoints. When the bounds are
// adjacent at the current resolution the fraction is extended by
// appending digits, so a key between two unequal bounds always exists.
func Between(a, b Key) (Key, error) {
	if !a.IsZero() {
		if err := a.Validate(); err != nil {
			return "", fmt.Errorf("lower bound: %w", err)
		}
	}
	if !b.IsZero() {
		if err := b.Validate(); err != nil {
			return "", fmt.Errorf("upper bound: %w", err)
		}
	}
	if !a.IsZero() && !b.IsZero() && a >= b {
		return "", fmt.Errorf("lower bound %q does not sort before upper bound %q", string(a), string(b))
	}

	if a.IsZero() {
		if b.IsZero() {
			return First(), nil
		}
		ib, fb := split(b)
		if ib == smallestInteger {
			return Key(ib + midpoint("", fb)), nil
		}
		if ib < string(b) {
			// b carries a fraction; its bare integer part sorts below it.
			return Key(ib), nil
		}
		prev, ok := decrementInteger(ib)
		if !ok {
			// Left edge of the integer space. Unreachable: the reserved
			// smallest integer is handled above and rejected as a key.
			return Key(ib + midpoint("", fb)), nil
		}
		return Key(prev), nil
	}

	if b.IsZero() {
		ia, fa := split(a)
		next, ok := incrementInteger(ia)
		if !ok {
			// Right edge of the integer space; extend the fraction instead.
			return Key(ia + midpoint(fa, "")), nil
		}
		return Key(next), nil
	}

	ia, fa := split(a)
	ib, fb := split(b)
	if ia == ib {
		return Key(ia + midpoint(fa, fb)), nil
	}
	next, ok := incrementInteger(ia)
	if ok && next < string(b) {
		return Key(next), nil
	}
	return Key(ia + midpoint(fa, "")), nil
}

// After returns a key sorting above a, used for appending at the end of a
// sequence. Increments the integer part where possible so append keys
// stay short. Equivalent to Between(a, zero).
func After(a Key) (Key, error) {
	return Between(a, "")
}

// Before returns a key sorting below b, used for inserting at the front
// of a non-empty sequence. Equivalent to Between(zero, b).
func Before(b Key) (Key, error) {
	return Between("", b)
}

// Spread returns n keys sorting strictly between a and b, ascending and
// evenly distributed. Open bounds follow the Between rules. With both
// bounds open the result is consecutive integer keys starting at First(),
// each adjacent pair keeping the full fraction space between them; this
// is the assignment a rebalance installs.
func Spread(a, b Key, n int) ([]Key, error) {
	if n < 0 {
		return nil, fmt.Errorf("key count %d is negative", n)
	}
	if n == 0 {
		return []Key{}, nil
	}
	if n == 1 {
		k, err := Between(a, b)
		if err != nil {
			return nil, err
		}
		return []Key{k}, nil
	}

	if b.IsZero() {
		c, err := Between(a, b)
		if err != nil {
			return nil, err
		}
		keys := make([]Key, 0, n)
		keys = append(keys, c)
		for len(keys) < n {
			c, err = Between(c, b)
			if err != nil {
				return nil, err
			}
			keys = append(keys, c)
		}
		return keys, nil
	}

	if a.IsZero() {
		c, err := Between(a, b)
		if err != nil {
			return nil, err
		}
		keys := make([]Key, 0, n)
		keys = append(keys, c)
		for len(keys) < n {
			c, err = Between(a, c)
			if err != nil {
				return nil, err
			}
			keys = append(keys, c)
		}
		// Produced top-down; put them in ascending order.
		for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
			keys[i], keys[j] = keys[j], keys[i]
		}
		return keys, nil
	}

	mid := n / 2
	c, err := Between(a, b)
	if err != nil {
		return nil, err
	}
	left, err := Spread(a, c, mid)
	if err != nil {
		return nil, err
	}
	right, err := Spread(c, b, n-mid-1)
	if err != nil {
		return nil, err
	}
	keys := make([]Key, 0, n)
	keys = append(keys, left...)
	keys = append(keys, c)
	keys = append(keys, right...)
	return keys, nil
}

// midpoint returns a digit string sorting strictly between fractions a
// and b that does not end in the zero digit. An empty b means unbounded
// above; an empty a is the minimal fraction. a must sort before b and
// neither may end in the zero digit.
func midpoint(a, b string) string {
	if b != "" {
		// Strip the longest common prefix. A byte missing on the a side
		// counts as the zero digit, so "1" shares the prefix "10" with
		// "105".
		n := 0
		for n < len(b) {
			ca := zeroDigit
			if n < len(a) {
				ca = a[n]
			}
			if ca != b[n] {
				break
			}
			n++
		}
		if n > 0 {
			rest := ""
			if n < len(a) {
				rest = a[n:]
			}
			return b[:n] + midpoint(rest, b[n:])
		}
	}

	// First differing digit.
	da := 0
	if a != "" {
		da = digitIndex(a[0])
	}
	db := len(digits)
	if b != "" {
		db = digitIndex(b[0])
	}
	if db-da > 1 {
		// Round to the middle digit, halving the remaining headroom.
		return string(digits[(da+db+1)/2])
	}

	// Adjacent digits: recurse one level deeper.
	if len(b) > 1 {
		return b[:1]
	}
	rest := ""
	if len(a) > 1 {
		rest = a[1:]
	}
	return string(digits[da]) + midpoint(rest, "")
}

// incrementInteger returns the integer part one step above x, adjusting
// the encoded length when the head carries. ok is false only when x is
// the maximum representable integer.
func incrementInteger(x string) (next string, ok bool) {
	head := x[0]
	digs := []byte(x[1:])
	carry := true
	for i := len(digs) - 1; carry && i >= 0; i-- {
		d := digitIndex(digs[i]) + 1
		if d == len(digits) {
			digs[i] = zeroDigit
		} else {
			digs[i] = digits[d]
			carry = false
		}
	}
	if !carry {
		return string(head) + string(digs), true
	}
	switch head {
	case 'Z':
		// Crossing from negative to non-negative integers.
		return "a" + string(zeroDigit), true
	case 'z':
		return "", false
	}
	h := head + 1
	if h > 'a' {
		digs = append(digs, zeroDigit)
	} else {
		digs = digs[:len(digs)-1]
	}
	return string(h) + string(digs), true
}

// decrementInteger returns the integer part one step below x, adjusting
// the encoded length when the head borrows. ok is false only when x is
// the reserved smallest integer.
func decrementInteger(x string) (prev string, ok bool) {
	head := x[0]
	digs := []byte(x[1:])
	borrow := true
	for i := len(digs) - 1; borrow && i >= 0; i-- {
		d := digitIndex(digs[i]) - 1
		if d < 0 {
			digs[i] = digits[len(digits)-1]
		} else {
			digs[i] = digits[d]
			borrow = false
		}
	}
	if !borrow {
		return string(head) + string(digs), true
	}
	switch head {
	case 'a':
		// Crossing from non-negative to negative integers.
		return "Z" + string(digits[len(digits)-1]), true
	case 'A':
		return "", false
	}
	h := head - 1
	if h < 'Z' {
		digs = append(digs, digits[len(digits)-1])
	} else {
		digs = digs[:len(digs)-1]
	}
	return string(h) + string(digs), true
}

package calc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// DefaultPrecision is the number of significant digits results keep.
const DefaultPrecision = 12

// exactDigits covers every fractional digit a float64 can carry (2^-1074).
const exactDigits = 1100

// Format rounds v to digits significant digits and renders the shortest
// decimal that round-trips. Magnitudes >= 1e21 or < 1e-6 use exponent
// form ("1e+21", "1.5e-7").
func Format(v float64, digits int) string {
	if digits <= 0 {
		digits = DefaultPrecision
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	r := roundSignificant(v, digits)
	if r == 0 {
		return "0"
	}
	abs := math.Abs(r)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(r, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// roundSignificant rounds the exact decimal value of v to digits
// significant digits, ties away from zero.
func roundSignificant(v float64, digits int) float64 {
	s := new(big.Float).SetFloat64(math.Abs(v)).Text('f', exactDigits)
	intPart, frac, _ := strings.Cut(s, ".")
	all := intPart + frac
	point := len(intPart)

	first := strings.IndexFunc(all, func(r rune) bool { return r != '0' })
	if first < 0 {
		return 0
	}
	end := first + digits
	if end >= len(all) {
		return v
	}
	keep := []byte(all[:end])
	if all[end] >= '5' {
		i := end - 1
		for ; i >= 0; i-- {
			if keep[i] != '9' {
				keep[i]++
				break
			}
			keep[i] = '0'
		}
		if i < 0 {
			keep = append([]byte{'1'}, keep...)
			point++
		}
	}

	var num string
	if len(keep) <= point {
		num = string(keep) + strings.Repeat("0", point-len(keep))
	} else {
		num = string(keep[:point]) + "." + string(keep[point:])
	}
	r, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return v
	}
	if v < 0 {
		return -r
	}
	return r
}

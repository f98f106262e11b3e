package radix

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	serrors "github.com/PolarWolf314/seedtool/internal/errors"
)

// ProjectToRadix maps every byte onto [0, radix-1].
func ProjectToRadix(data []byte, radix int) []int {
	out := make([]int, len(data))
	if radix < 2 {
		return out
	}
	max := radix - 1
	for i, b := range data {
		v := int(math.Round(float64(b) / 255.0 * float64(max)))
		if v < 0 {
			v = 0
		} else if v > max {
			v = max
		}
		out[i] = v
	}
	return out
}

// RenderInts projects data onto [low, high] and joins the values with separator.
// Returns ErrRange unless low < high <= 255.
func RenderInts(data []byte, low, high int, separator string) (string, error) {
	if low < 0 || low >= high || high > 255 {
		return "", fmt.Errorf("%w: low=%d high=%d", serrors.ErrRange, low, high)
	}

	values := ProjectToRadix(data, high-low+1)
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v + low)
	}
	return strings.Join(parts, separator), nil
}

// RenderAlphabet projects data onto radix symbols and renders each one
// through symbolFn.
func RenderAlphabet(data []byte, radix int, symbolFn func(int) string) string {
	var sb strings.Builder
	for _, v := range ProjectToRadix(data, radix) {
		sb.WriteString(symbolFn(v))
	}
	return sb.String()
}

// ParseDigitString accepts a string of single decimal digits, each within
// [low, high], and returns their values.
func ParseDigitString(text string, low, high int) ([]byte, error) {
	if low < 0 || low >= high || high > 9 {
		return nil, fmt.Errorf("%w: low=%d high=%d", serrors.ErrRange, low, high)
	}

	out := make([]byte, 0, len(text))
	for i, r := range text {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("%w: %w %q at position %d", serrors.ErrInvalidAlphabet, serrors.ErrInvalidDigit, r, i)
		}
		v := int(r - '0')
		if v < low || v > high {
			return nil, fmt.Errorf("%w: %w %q at position %d, expected %d-%d",
				serrors.ErrInvalidAlphabet, serrors.ErrInvalidDigit, r, i, low, high)
		}
		out = append(out, byte(v))
	}
	return out, nil
}

// ParseInts parses whitespace separated integers in 0..255.
func ParseInts(text string) ([]byte, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no integers found", serrors.ErrInvalidAlphabet)
	}

	out := make([]byte, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer in 0-255", serrors.ErrInvalidAlphabet, f)
		}
		out[i] = byte(v)
	}
	return out, nil
}

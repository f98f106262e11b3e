package sskr

// Arithmetic in GF(2^8) with the Rijndael polynomial x^8+x^4+x^3+x+1.

var (
	expTable [510]byte
	logTable [256]byte
)

func init() {
	x := byte(1)
	for i := 0; i < 255; i++ {
		expTable[i] = x
		logTable[x] = byte(i)
		// Multiply by the generator 3.
		x ^= xtime(x)
	}
	for i := 255; i < len(expTable); i++ {
		expTable[i] = expTable[i-255]
	}
}

func xtime(a byte) byte {
	if a&0x80 != 0 {
		return a<<1 ^ 0x1b
	}
	return a << 1
}

func gfMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return expTable[int(logTable[a])+int(logTable[b])]
}

func gfDiv(a, b byte) byte {
	if a == 0 {
		return 0
	}
	return expTable[int(logTable[a])+255-int(logTable[b])]
}

// interpolate evaluates at x the polynomial through the points (xs[i], ys[i]).
func interpolate(xs []byte, ys [][]byte, x byte) []byte {
	out := make([]byte, len(ys[0]))
	for i, xi := range xs {
		if xi == x {
			copy(out, ys[i])
			return out
		}
	}

	for i, xi := range xs {
		num, den := byte(1), byte(1)
		for j, xj := range xs {
			if i == j {
				continue
			}
			num = gfMul(num, x^xj)
			den = gfMul(den, xi^xj)
		}
		basis := gfDiv(num, den)
		for k, y := range ys[i] {
			out[k] ^= gfMul(basis, y)
		}
	}
	return out
}

package ur

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/bits"
	"slices"
)

// xoshiro256 is the xoshiro256** generator seeded from a SHA-256 digest.
type xoshiro256 struct {
	s [4]uint64
}

func newXoshiro256(seed []byte) *xoshiro256 {
	digest := sha256.Sum256(seed)
	x := &xoshiro256{}
	for i := range x.s {
		x.s[i] = binary.BigEndian.Uint64(digest[i*8 : i*8+8])
	}
	return x
}

func (x *xoshiro256) next() uint64 {
	s := &x.s
	result := bits.RotateLeft64(s[1]*5, 7) * 9
	t := s[1] << 17

	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]
	s[2] ^= t
	s[3] = bits.RotateLeft64(s[3], 45)

	return result
}

func (x *xoshiro256) nextDouble() float64 {
	return float64(x.next()) / (float64(math.MaxUint64) + 1.0)
}

// nextInt returns a value in [low, high].
func (x *xoshiro256) nextInt(low, high int) int {
	return int(x.nextDouble()*float64(high-low+1)) + low
}

// randomSampler draws indexes with the given weights using Vose's alias method.
type randomSampler struct {
	probs   []float64
	aliases []int
}

func newRandomSampler(weights []float64) *randomSampler {
	var sum float64
	for _, w := range weights {
		sum += w
	}

	n := len(weights)
	p := make([]float64, n)
	for i, w := range weights {
		p[i] = w * float64(n) / sum
	}

	var small, large []int
	for i := n - 1; i >= 0; i-- {
		if p[i] < 1 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	probs := make([]float64, n)
	aliases := make([]int, n)
	for len(small) > 0 && len(large) > 0 {
		a := small[len(small)-1]
		small = small[:len(small)-1]
		g := large[len(large)-1]
		large = large[:len(large)-1]

		probs[a] = p[a]
		aliases[a] = g
		p[g] += p[a] - 1
		if p[g] < 1 {
			small = append(small, g)
		} else {
			large = append(large, g)
		}
	}
	for _, g := range large {
		probs[g] = 1
	}
	// Only reachable through floating point drift.
	for _, a := range small {
		probs[a] = 1
	}

	return &randomSampler{probs: probs, aliases: aliases}
}

func (r *randomSampler) next(rng *xoshiro256) int {
	r1 := rng.nextDouble()
	r2 := rng.nextDouble()
	i := int(float64(len(r.probs)) * r1)
	if r2 < r.probs[i] {
		return i
	}
	return r.aliases[i]
}

// chooseFragments returns the fragment indexes mixed into part seqNum.
func chooseFragments(seqNum uint32, seqLen int, checksum uint32) []int {
	if int(seqNum) <= seqLen {
		return []int{int(seqNum) - 1}
	}

	seed := make([]byte, 8)
	binary.BigEndian.PutUint32(seed[0:4], seqNum)
	binary.BigEndian.PutUint32(seed[4:8], checksum)
	rng := newXoshiro256(seed)

	weights := make([]float64, seqLen)
	for i := range weights {
		weights[i] = 1.0 / float64(i+1)
	}
	degree := newRandomSampler(weights).next(rng) + 1

	remaining := make([]int, seqLen)
	for i := range remaining {
		remaining[i] = i
	}
	shuffled := make([]int, 0, seqLen)
	for len(remaining) > 0 {
		idx := rng.nextInt(0, len(remaining)-1)
		shuffled = append(shuffled, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}

	chosen := shuffled[:degree]
	slices.Sort(chosen)
	return chosen
}

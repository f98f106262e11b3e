package ur

import (
	"fmt"
	"hash/crc32"
	"slices"

	serrors "github.com/PolarWolf314/seedtool/internal/errors"
)

const (
	minFragmentLen = 10

	// maxMessageLen bounds the message size a part may announce.
	maxMessageLen = 1 << 20
)

// fountainPart is the CBOR array carried by every multipart UR.
type fountainPart struct {
	_          struct{} `cbor:",toarray"`
	SeqNum     uint32
	SeqLen     int
	MessageLen int
	Checksum   uint32
	Data       []byte
}

// nominalFragmentLen picks the smallest fragment count whose fragments fit
// within maxFragmentLen.
func nominalFragmentLen(messageLen, maxFragmentLen int) int {
	maxCount := max(1, messageLen/minFragmentLen)
	fragmentLen := messageLen
	for count := 1; count <= maxCount; count++ {
		fragmentLen = (messageLen + count - 1) / count
		if fragmentLen <= maxFragmentLen {
			break
		}
	}
	return fragmentLen
}

func partitionMessage(message []byte, fragmentLen int) [][]byte {
	count := (len(message) + fragmentLen - 1) / fragmentLen
	padded := make([]byte, count*fragmentLen)
	copy(padded, message)

	fragments := make([][]byte, count)
	for i := range fragments {
		fragments[i] = padded[i*fragmentLen : (i+1)*fragmentLen]
	}
	return fragments
}

func xorInto(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

type fountainEncoder struct {
	messageLen int
	checksum   uint32
	fragments  [][]byte
	seqNum     uint32
}

func newFountainEncoder(message []byte, maxFragmentLen int) (*fountainEncoder, error) {
	if len(message) == 0 {
		return nil, fmt.Errorf("%w: cannot split an empty message", serrors.ErrEmptyPayload)
	}
	if maxFragmentLen < minFragmentLen {
		return nil, fmt.Errorf("%w: max fragment length must be at least %d", serrors.ErrRange, minFragmentLen)
	}

	fragmentLen := nominalFragmentLen(len(message), maxFragmentLen)
	return &fountainEncoder{
		messageLen: len(message),
		checksum:   crc32.ChecksumIEEE(message),
		fragments:  partitionMessage(message, fragmentLen),
	}, nil
}

func (e *fountainEncoder) seqLen() int {
	return len(e.fragments)
}

func (e *fountainEncoder) nextPart() fountainPart {
	e.seqNum++
	indexes := chooseFragments(e.seqNum, e.seqLen(), e.checksum)

	mixed := make([]byte, len(e.fragments[0]))
	for _, i := range indexes {
		xorInto(mixed, e.fragments[i])
	}

	return fountainPart{
		SeqNum:     e.seqNum,
		SeqLen:     e.seqLen(),
		MessageLen: e.messageLen,
		Checksum:   e.checksum,
		Data:       mixed,
	}
}

// mixedPart is a received part reduced to the fragments still unknown.
type mixedPart struct {
	indexes []int
	data    []byte
}

func (m mixedPart) key() string {
	return fmt.Sprint(m.indexes)
}

// reduceBy removes the fragments of other from m when other is a strict subset.
func (m mixedPart) reduceBy(other mixedPart) mixedPart {
	if len(other.indexes) >= len(m.indexes) {
		return m
	}
	for _, i := range other.indexes {
		if !slices.Contains(m.indexes, i) {
			return m
		}
	}

	indexes := make([]int, 0, len(m.indexes)-len(other.indexes))
	for _, i := range m.indexes {
		if !slices.Contains(other.indexes, i) {
			indexes = append(indexes, i)
		}
	}
	data := slices.Clone(m.data)
	xorInto(data, other.data)
	return mixedPart{indexes: indexes, data: data}
}

type fountainDecoder struct {
	seqLen     int
	messageLen int
	checksum   uint32
	fragLen    int

	simple  map[int][]byte
	mixed   map[string]mixedPart
	message []byte
}

func newFountainDecoder() *fountainDecoder {
	return &fountainDecoder{
		simple: make(map[int][]byte),
		mixed:  make(map[string]mixedPart),
	}
}

func (d *fountainDecoder) isComplete() bool {
	return d.message != nil
}

// validate checks the header against the partitioning the encoder uses,
// so a part cannot announce more fragments than its message can hold.
func (p fountainPart) validate() error {
	if p.SeqNum == 0 || p.SeqLen <= 0 || p.MessageLen <= 0 || len(p.Data) == 0 {
		return fmt.Errorf("%w: malformed fountain part", serrors.ErrDecodeFailure)
	}
	if p.MessageLen > maxMessageLen {
		return fmt.Errorf("%w: message length %d exceeds %d", serrors.ErrDecodeFailure, p.MessageLen, maxMessageLen)
	}
	if want := (p.MessageLen + len(p.Data) - 1) / len(p.Data); p.SeqLen != want {
		return fmt.Errorf("%w: %d fragments of %d bytes cannot carry %d bytes",
			serrors.ErrDecodeFailure, p.SeqLen, len(p.Data), p.MessageLen)
	}
	if p.SeqLen > max(1, p.MessageLen/minFragmentLen) {
		return fmt.Errorf("%w: fragments shorter than %d bytes", serrors.ErrDecodeFailure, minFragmentLen)
	}
	return nil
}

func (d *fountainDecoder) receive(p fountainPart) error {
	if d.isComplete() {
		return nil
	}
	if err := p.validate(); err != nil {
		return err
	}

	if d.seqLen == 0 {
		d.seqLen = p.SeqLen
		d.messageLen = p.MessageLen
		d.checksum = p.Checksum
		d.fragLen = len(p.Data)
	} else if p.SeqLen != d.seqLen || p.MessageLen != d.messageLen || p.Checksum != d.checksum || len(p.Data) != d.fragLen {
		return fmt.Errorf("%w: part %d does not belong to this message", serrors.ErrDecodeFailure, p.SeqNum)
	}

	part := mixedPart{
		indexes: chooseFragments(p.SeqNum, p.SeqLen, p.Checksum),
		data:    slices.Clone(p.Data),
	}
	d.process(part)

	if len(d.simple) == d.seqLen {
		return d.assemble()
	}
	return nil
}

func (d *fountainDecoder) process(first mixedPart) {
	queue := []mixedPart{first}
	for len(queue) > 0 {
		part := queue[0]
		queue = queue[1:]

		for _, i := range part.indexes {
			if data, ok := d.simple[i]; ok {
				part = part.reduceBy(mixedPart{indexes: []int{i}, data: data})
			}
		}
		for _, m := range d.mixed {
			part = part.reduceBy(m)
		}
		if len(part.indexes) == 0 {
			continue
		}

		if len(part.indexes) == 1 {
			idx := part.indexes[0]
			if _, ok := d.simple[idx]; ok {
				continue
			}
			d.simple[idx] = part.data
		} else {
			if _, ok := d.mixed[part.key()]; ok {
				continue
			}
			d.mixed[part.key()] = part
		}

		// Any stored mix that contains this part can now shrink.
		for key, m := range d.mixed {
			reduced := m.reduceBy(part)
			if len(reduced.indexes) != len(m.indexes) {
				delete(d.mixed, key)
				queue = append(queue, reduced)
			}
		}
	}
}

func (d *fountainDecoder) assemble() error {
	joined := make([]byte, 0, d.seqLen*d.fragLen)
	for i := 0; i < d.seqLen; i++ {
		joined = append(joined, d.simple[i]...)
	}
	message := joined[:d.messageLen]
	if crc32.ChecksumIEEE(message) != d.checksum {
		return fmt.Errorf("%w: reassembled message", serrors.ErrChecksum)
	}
	d.message = message
	return nil
}

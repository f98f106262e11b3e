package bytewords

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"strings"

	serrors "github.com/PolarWolf314/seedtool/internal/errors"
)

// Style selects how words are rendered and separated.
type Style int

const (
	Standard Style = iota
	URI
	Minimal
)

func (s Style) String() string {
	switch s {
	case Standard:
		return "standard"
	case URI:
		return "uri"
	case Minimal:
		return "minimal"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

var (
	wordIndex    = make(map[string]byte, 256)
	minimalIndex = make(map[string]byte, 256)
)

func init() {
	for i, w := range wordList {
		wordIndex[w] = byte(i)
		minimalIndex[minimalWord(w)] = byte(i)
	}
}

func minimalWord(w string) string {
	return w[:1] + w[3:]
}

// Encode renders data plus its checksum in the given style.
func Encode(data []byte, style Style) string {
	payload := appendChecksum(data)

	words := make([]string, len(payload))
	for i, b := range payload {
		if style == Minimal {
			words[i] = minimalWord(wordList[b])
		} else {
			words[i] = wordList[b]
		}
	}

	switch style {
	case URI:
		return strings.Join(words, "-")
	case Minimal:
		return strings.Join(words, "")
	default:
		return strings.Join(words, " ")
	}
}

// Decode parses text in the given style and verifies the checksum.
func Decode(text string, style Style) ([]byte, error) {
	text = strings.ToLower(strings.TrimSpace(text))

	var payload []byte
	var err error
	switch style {
	case Minimal:
		payload, err = decodeMinimal(text)
	case URI:
		payload, err = decodeWords(strings.Split(text, "-"))
	default:
		payload, err = decodeWords(strings.Fields(text))
	}
	if err != nil {
		return nil, err
	}

	return stripChecksum(payload)
}

func decodeWords(words []string) ([]byte, error) {
	out := make([]byte, len(words))
	for i, w := range words {
		b, ok := wordIndex[w]
		if !ok {
			return nil, fmt.Errorf("%w: invalid byteword %q", serrors.ErrDecodeFailure, w)
		}
		out[i] = b
	}
	return out, nil
}

func decodeMinimal(text string) ([]byte, error) {
	if len(text)%2 != 0 {
		return nil, fmt.Errorf("%w: minimal bytewords must have even length", serrors.ErrDecodeFailure)
	}
	out := make([]byte, len(text)/2)
	for i := range out {
		pair := text[i*2 : i*2+2]
		b, ok := minimalIndex[pair]
		if !ok {
			return nil, fmt.Errorf("%w: invalid minimal byteword %q", serrors.ErrDecodeFailure, pair)
		}
		out[i] = b
	}
	return out, nil
}

func appendChecksum(data []byte) []byte {
	out := make([]byte, len(data), len(data)+4)
	copy(out, data)
	return binary.BigEndian.AppendUint32(out, crc32.ChecksumIEEE(data))
}

func stripChecksum(payload []byte) ([]byte, error) {
	if len(payload) < 5 {
		return nil, fmt.Errorf("%w: bytewords payload too short", serrors.ErrDecodeFailure)
	}
	body := payload[:len(payload)-4]
	want := binary.BigEndian.Uint32(payload[len(payload)-4:])
	if crc32.ChecksumIEEE(body) != want {
		return nil, serrors.ErrChecksum
	}
	return body, nil
}

// Identifier renders data as space separated words without a checksum.
func Identifier(data []byte) string {
	words := make([]string, len(data))
	for i, b := range data {
		words[i] = wordList[b]
	}
	return strings.Join(words, " ")
}

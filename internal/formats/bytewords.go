package formats

import (
	"strings"

	"github.com/PolarWolf314/seedtool/internal/bytewords"
	"github.com/PolarWolf314/seedtool/internal/seed"
)

func decodeBytewords(in Input, style bytewords.Style) (*seed.Seed, error) {
	text, err := in.Text()
	if err != nil {
		return nil, err
	}
	data, err := bytewords.Decode(strings.TrimSpace(text), style)
	if err != nil {
		return nil, err
	}
	return seed.New(data)
}

func decodeBtw(in Input, _ Options) (*seed.Seed, error) {
	return decodeBytewords(in, bytewords.Standard)
}

func decodeBtwu(in Input, _ Options) (*seed.Seed, error) {
	return decodeBytewords(in, bytewords.URI)
}

func decodeBtwm(in Input, _ Options) (*seed.Seed, error) {
	return decodeBytewords(in, bytewords.Minimal)
}

func encodeBtw(s *seed.Seed, _ Options) (string, error) {
	return bytewords.Encode(s.Data, bytewords.Standard), nil
}

func encodeBtwu(s *seed.Seed, _ Options) (string, error) {
	return bytewords.Encode(s.Data, bytewords.URI), nil
}

func encodeBtwm(s *seed.Seed, _ Options) (string, error) {
	return bytewords.Encode(s.Data, bytewords.Minimal), nil
}

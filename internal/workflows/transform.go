package workflows

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	"github.com/PolarWolf314/seedtool/internal/bytewords"
	"github.com/PolarWolf314/seedtool/internal/entropy"
	serrors "github.com/PolarWolf314/seedtool/internal/errors"
	"github.com/PolarWolf314/seedtool/internal/formats"
	logger "github.com/PolarWolf314/seedtool/internal/logging"
	"github.com/PolarWolf314/seedtool/internal/seed"
	"github.com/PolarWolf314/seedtool/internal/sskr"
)

// Bounds accepted for the numeric options.
const (
	MinCount = 1
	MaxCount = 64
	MaxLow   = 254
	MinHigh  = 1
	MaxHigh  = 255
)

// State is a stage of the transformation pipeline. A run only moves
// forward and stops at the first error.
type State int

const (
	StateUnconfigured State = iota
	StateInputSelected
	StateDecoded
	StateMetadataApplied
	StateEncoded
)

func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateInputSelected:
		return "input-selected"
	case StateDecoded:
		return "decoded"
	case StateMetadataApplied:
		return "metadata-applied"
	case StateEncoded:
		return "encoded"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// TransformOptions configures a single seed transformation.
type TransformOptions struct {
	// In and Out select the input and output formats.
	In  formats.Key
	Out formats.Key

	// Input supplies the input text. It is only read by decoders that
	// need text, and is released when Transform returns.
	Input *InputReader

	// Count is the number of bytes generated by random or derived by lossy
	// inputs.
	Count int

	// Low and High bound the ints output.
	Low  int
	High int

	// Name, Note and Date replace the seed's metadata when non-nil.
	Name *string
	Note *string
	Date *time.Time

	MaxFragmentLen  int
	AdditionalParts int

	SSKRSpec   sskr.Spec
	SSKRFormat formats.SSKRFormat

	// Deterministic, when set, replaces the secure random source with a
	// reproducible one seeded from this string.
	Deterministic *string

	// Random overrides the random source entirely. Nil means crypto/rand
	// unless Deterministic is set.
	Random io.Reader

	Logger logger.Logger
}

// TransformResult contains the outcome of a transformation.
type TransformResult struct {
	// Output is the rendered seed, possibly several lines.
	Output string

	// Seed is the value that was encoded, after metadata overrides.
	Seed *seed.Seed

	// State is the last state reached.
	State State
}

type pipeline struct {
	opts    TransformOptions
	state   State
	decoder formats.Decoder
	encoder formats.Encoder
	fmtOpts formats.Options
	seed    *seed.Seed
	output  string
}

// Transform decodes the input in one format and re-encodes it in another.
//
// Returns ErrNonReversibleChain before reading any input if a lossy output
// is requested from anything but random.
// Returns ErrRange if count, low, high or the multipart sizes are out of
// bounds.
// Returns ErrNotReproducible if a deterministic run asks for SLIP-39 output.
// Returns ErrUnknownFormat if the output format cannot be encoded.
// Returns ErrInvalidGroupSpec if SSKR or SLIP-39 output has a bad group spec.
// Any decoder or encoder error is returned wrapped.
func Transform(ctx context.Context, opts TransformOptions) (*TransformResult, error) {
	if opts.Input == nil {
		opts.Input = NewInputReader(nil, nil)
	}
	defer opts.Input.Release()

	p := &pipeline{opts: opts}
	steps := []struct {
		next State
		run  func() error
	}{
		{StateInputSelected, p.selectFormats},
		{StateDecoded, p.decode},
		{StateMetadataApplied, p.applyMetadata},
		{StateEncoded, p.encode},
	}

	result := &TransformResult{}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			result.State = p.state
			return result, err
		}
		if err := step.run(); err != nil {
			result.State = p.state
			return result, err
		}
		p.state = step.next
		opts.Logger.Debugf("pipeline state: %s", p.state)
	}

	result.State = p.state
	result.Seed = p.seed
	result.Output = p.output
	return result, nil
}

func (p *pipeline) selectFormats() error {
	opts := p.opts

	if opts.Count < MinCount || opts.Count > MaxCount {
		return fmt.Errorf("%w: count %d must be %d-%d", serrors.ErrRange, opts.Count, MinCount, MaxCount)
	}
	if opts.Low < 0 || opts.Low > MaxLow {
		return fmt.Errorf("%w: low %d must be 0-%d", serrors.ErrRange, opts.Low, MaxLow)
	}
	if opts.High < MinHigh || opts.High > MaxHigh {
		return fmt.Errorf("%w: high %d must be %d-%d", serrors.ErrRange, opts.High, MinHigh, MaxHigh)
	}
	if opts.Low >= opts.High {
		return fmt.Errorf("%w: low %d must be less than high %d", serrors.ErrRange, opts.Low, opts.High)
	}
	if opts.AdditionalParts < 0 {
		return fmt.Errorf("%w: additional parts %d must not be negative", serrors.ErrRange, opts.AdditionalParts)
	}
	if opts.MaxFragmentLen < 1 {
		return fmt.Errorf("%w: max fragment length %d must be positive", serrors.ErrRange, opts.MaxFragmentLen)
	}

	if !formats.IsReversible(opts.Out) && opts.In != formats.Random {
		return fmt.Errorf("%w: %s output loses information, so the input must be random (got %s)",
			serrors.ErrNonReversibleChain, opts.Out, opts.In)
	}

	decoder, err := formats.SelectDecoder(opts.In)
	if err != nil {
		return err
	}
	encoder, err := formats.SelectEncoder(opts.Out)
	if err != nil {
		return err
	}

	if opts.Out == formats.SLIP39 && opts.Deterministic != nil {
		return fmt.Errorf("%w: slip39 shares use their own secure randomness; convert the seed in a separate run",
			serrors.ErrNotReproducible)
	}

	if opts.Out == formats.SSKR || opts.Out == formats.SLIP39 {
		if err := opts.SSKRSpec.Validate(); err != nil {
			return err
		}
	}

	p.decoder = decoder
	p.encoder = encoder
	p.fmtOpts = formats.Options{
		Count:           opts.Count,
		Low:             opts.Low,
		High:            opts.High,
		Random:          p.randomSource(),
		MaxFragmentLen:  opts.MaxFragmentLen,
		AdditionalParts: opts.AdditionalParts,
		SSKRSpec:        opts.SSKRSpec,
		SSKRFormat:      opts.SSKRFormat,
	}
	p.opts.Logger.Infof("transforming %s to %s", opts.In, opts.Out)
	return nil
}

func (p *pipeline) randomSource() io.Reader {
	switch {
	case p.opts.Random != nil:
		return p.opts.Random
	case p.opts.Deterministic != nil:
		p.opts.Logger.Infof("using deterministic random source, output is reproducible")
		return entropy.NewDeterministic(*p.opts.Deterministic)
	default:
		return rand.Reader
	}
}

func (p *pipeline) decode() error {
	s, err := p.decoder(p.opts.Input, p.fmtOpts)
	if err != nil {
		return fmt.Errorf("decoding %s input: %w", p.opts.In, err)
	}
	p.seed = s

	digest := sha256.Sum256(s.Data)
	p.opts.Logger.Infof("decoded %d byte seed %s", len(s.Data), bytewords.Identifier(digest[:4]))
	return nil
}

func (p *pipeline) applyMetadata() error {
	if p.opts.Name != nil {
		p.seed.Name = *p.opts.Name
	}
	if p.opts.Note != nil {
		p.seed.Note = *p.opts.Note
	}
	if p.opts.Date != nil {
		date := *p.opts.Date
		p.seed.CreationDate = &date
	}

	hasMetadata := p.seed.Name != "" || p.seed.Note != "" || p.seed.CreationDate != nil
	if hasMetadata && !carriesMetadata(p.opts.Out, p.opts.SSKRFormat) {
		p.opts.Logger.Infof("%s output does not carry name, note or date", p.opts.Out)
	}
	return nil
}

func (p *pipeline) encode() error {
	out, err := p.encoder(p.seed, p.fmtOpts)
	if err != nil {
		return fmt.Errorf("encoding %s output: %w", p.opts.Out, err)
	}
	p.output = out
	return nil
}

func carriesMetadata(out formats.Key, sskrFormat formats.SSKRFormat) bool {
	switch out {
	case formats.Envelope, formats.Multipart, formats.Seed:
		return true
	case formats.SSKR:
		return sskrFormat == formats.SSKREnvelope
	default:
		return false
	}
}

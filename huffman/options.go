package huffman

import (
	"io"

	"github.com/egonelbre/exp-huffman/internal/logger"
)

// Phase identifies which stage a Progress report belongs to.
type Phase int

const (
	PhaseEncode Phase = iota
	PhaseDecode
)

func (p Phase) String() string {
	if p == PhaseDecode {
		return "decode"
	}
	return "encode"
}

// Progress reports how far an encode or decode has got. Done and Total are
// encoded bytes written while encoding and decoded bytes written while
// decoding.
type Progress struct {
	Phase Phase
	Done  uint64
	Total uint64
}

// Options configures Compress, Decompress, Encode and Decode.
type Options struct {
	Width       Width
	TableFormat TableFormat
	ChunkSize   int
	Log         logger.Logger
	Progress    func(Progress)

	// PMF receives the symbol count history as CSV when set.
	PMF         io.Writer
	PMFInterval int
}

// Option adjusts Options; see the With* constructors.
type Option func(*Options)

// WithWidth sets the symbol width. The default is Width32.
func WithWidth(w Width) Option {
	return func(o *Options) { o.Width = w }
}

// WithTableFormat sets the format used when writing the table. Reading
// detects the format on its own.
func WithTableFormat(f TableFormat) Option {
	return func(o *Options) { o.TableFormat = f }
}

// WithChunkSize sets the bit-stream buffer size in bytes.
func WithChunkSize(n int) Option {
	return func(o *Options) { o.ChunkSize = n }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(log logger.Logger) Option {
	return func(o *Options) { o.Log = log }
}

// WithProgress installs a callback invoked once per flushed chunk.
func WithProgress(fn func(Progress)) Option {
	return func(o *Options) { o.Progress = fn }
}

// WithPMF makes Encode record cumulative symbol counts every interval
// source bytes and write them to w as CSV. A non-positive interval selects
// DefaultPMFInterval.
func WithPMF(w io.Writer, interval int) Option {
	return func(o *Options) {
		o.PMF = w
		o.PMFInterval = interval
	}
}

func newOptions(opts ...Option) Options {
	o := Options{
		Width:       Width32,
		TableFormat: TableText,
		ChunkSize:   DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Log == nil {
		o.Log = logger.Sugar
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	return o
}

func (o *Options) report(phase Phase, total uint64) func(uint64) {
	if o.Progress == nil {
		return nil
	}
	return func(done uint64) {
		o.Progress(Progress{Phase: phase, Done: done, Total: total})
	}
}

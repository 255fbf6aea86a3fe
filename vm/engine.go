package vm

import (
	"bufio"
	"io"
	"os"
)

// Engine is the complete simulator state: the register file, PC, the
// predictor bank, retired-instruction count, and the "next instruction is
// a jump target" flag the trace emitter uses (spec.md §4.5, §4.6). All of
// it is owned exclusively by one Engine instance and released when
// Simulate returns; nothing here is process-wide (spec.md §9 "Global
// mutable state").
type Engine struct {
	Regs RegisterFile
	PC   uint32

	Mem     Memory
	Symbols SymbolTable

	Predictors *PredictorBank

	Retired uint64
	running bool

	// nextIsJumpTarget is set after JAL/JALR so the trace emitter can tag
	// the following instruction with "=>" (spec.md §4.6, §9 open question:
	// preserved exactly as specified even though the tag lands on the
	// instruction after the jump rather than on the target itself).
	nextIsJumpTarget bool
	prevWasJump      bool

	Trace *Trace

	stdin  *bufio.Reader
	stdout io.Writer

	FatalErr error
}

// NewEngine constructs an Engine ready to run at startAddr. mem must not
// be nil; sink and symbols may be nil (spec.md §6).
func NewEngine(mem Memory, startAddr uint32, sink io.Writer, symbols SymbolTable) *Engine {
	e := &Engine{
		PC:         startAddr,
		Mem:        mem,
		Symbols:    symbols,
		Predictors: NewPredictorBank(),
		running:    true,
		stdin:      bufio.NewReader(os.Stdin),
		stdout:     os.Stdout,
	}
	if sink != nil {
		e.Trace = NewTrace(sink)
	}
	return e
}

// SetStdin overrides the stream ECALL getchar reads from. Exposed mainly
// for tests.
func (e *Engine) SetStdin(r io.Reader) {
	if br, ok := r.(*bufio.Reader); ok {
		e.stdin = br
	} else {
		e.stdin = bufio.NewReader(r)
	}
}

// SetStdout overrides the stream ECALL putchar writes to. Exposed mainly
// for tests.
func (e *Engine) SetStdout(w io.Writer) {
	e.stdout = w
}

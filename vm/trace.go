package vm

import (
	"fmt"
	"io"

	"github.com/lookbusy1344/rv32imsim/disasm"
)

// Trace emits one structured line per retired instruction when a log
// sink is attached (spec.md §4.6). Construction is skipped entirely when
// no sink is present (spec.md §9, "Trace emission cost").
type Trace struct {
	w io.Writer
}

// NewTrace wraps a sink in a Trace emitter.
func NewTrace(w io.Writer) *Trace {
	return &Trace{w: w}
}

// memWrite describes a store's effect for the trace line's M[addr] field.
type memWrite struct {
	addr  uint32
	value uint32
	width int // 1, 2, or 4 bytes
}

// regWrite describes a register write for the trace line's R[d] field.
type regWrite struct {
	reg   uint32
	value uint32
}

// emit writes one trace line. prefix is "=>" when the previous
// instruction was JAL/JALR, two spaces otherwise (spec.md §4.6).
func (t *Trace) emit(seq uint64, prefix string, pc, instr uint32, symbols disasm.SymbolTable, rw *regWrite, mw *memWrite) {
	asm := disasm.Disassemble(pc, instr, symbols, 64)
	line := fmt.Sprintf("%d %s %08x : %08x   %s", seq, prefix, pc, instr, disasm.Pad(asm, 30))

	if rw != nil {
		line += fmt.Sprintf("  R[%d] <- %08x", rw.reg, rw.value)
	}
	if mw != nil {
		line += fmt.Sprintf("  M[%08x] <- %s", mw.addr, formatWidth(mw.value, mw.width))
	}

	fmt.Fprintln(t.w, line)
}

func formatWidth(v uint32, width int) string {
	switch width {
	case 1:
		return fmt.Sprintf("%02x", v&0xFF)
	case 2:
		return fmt.Sprintf("%04x", v&0xFFFF)
	default:
		return fmt.Sprintf("%08x", v)
	}
}

package vm

import (
	"fmt"
	"io"
	"os"
)

// fields is the set of bit groups every RV32IM instruction decodes into,
// named exactly as spec.md §4.5 step 2 lists them.
type fields struct {
	opcode uint32
	rd     uint32
	funct3 uint32
	rs1    uint32
	rs2    uint32
	funct7 uint32
}

// Step fetches, decodes and executes exactly one instruction, feeding the
// predictor bank and trace emitter as it goes (spec.md §4.5). It returns
// false once the engine has halted (EBREAK, exit syscall, or a fatal
// decode/dispatch fault).
func (e *Engine) Step() bool {
	if !e.running {
		return false
	}

	pc := e.PC
	instr, err := e.Mem.ReadWord(pc)
	e.Retired++
	if err != nil {
		e.fatal(pc, fmt.Errorf("fetch failed: %w", err))
		return false
	}

	f := fields{
		opcode: instr & 0x7F,
		rd:     (instr >> 7) & 0x1F,
		funct3: (instr >> 12) & 0x7,
		rs1:    (instr >> 15) & 0x1F,
		rs2:    (instr >> 20) & 0x1F,
		funct7: (instr >> 25) & 0x7F,
	}

	nextPC := pc + 4
	var rw *regWrite
	var mw *memWrite
	halt := false

	switch f.opcode {
	case OpcodeOP:
		a, b := e.Regs.Get(f.rs1), e.Regs.Get(f.rs2)
		result, derr := execRType(f.funct3, f.funct7, a, b)
		if derr != nil {
			e.fatal(pc, derr)
			return false
		}
		if f.rd != 0 {
			rw = e.writeReg(f.rd, result)
		}

	case OpcodeOPIMM:
		imm := ImmI(instr)
		shamt := (instr >> 20) & 0x1F
		srai := (instr>>30)&0x1 == 1
		result, derr := execOpImm(f.funct3, srai, e.Regs.Get(f.rs1), imm, shamt)
		if derr != nil {
			e.fatal(pc, derr)
			return false
		}
		if f.rd != 0 {
			rw = e.writeReg(f.rd, result)
		}

	case OpcodeLoad:
		addr := asUnsigned(asSigned(e.Regs.Get(f.rs1)) + ImmI(instr))
		value, derr := execLoad(e.Mem, f.funct3, addr)
		if derr != nil {
			e.fatal(pc, derr)
			return false
		}
		if f.rd != 0 {
			rw = e.writeReg(f.rd, value)
		}

	case OpcodeStore:
		addr := asUnsigned(asSigned(e.Regs.Get(f.rs1)) + ImmS(instr))
		value := e.Regs.Get(f.rs2)
		width, derr := execStore(e.Mem, f.funct3, addr, value)
		if derr != nil {
			e.fatal(pc, derr)
			return false
		}
		mw = &memWrite{addr: addr, value: value, width: width}

	case OpcodeBranch:
		a, b := e.Regs.Get(f.rs1), e.Regs.Get(f.rs2)
		taken, derr := evalBranch(f.funct3, a, b)
		if derr != nil {
			e.fatal(pc, derr)
			return false
		}
		immB := ImmB(instr)
		if taken {
			nextPC = asUnsigned(asSigned(pc) + immB)
		}
		actualTaken := nextPC != pc+4
		e.Predictors.Observe(pc, immB, actualTaken)

	case OpcodeLUI:
		value := asUnsigned(ImmU(instr))
		if f.rd != 0 {
			rw = e.writeReg(f.rd, value)
		}

	case OpcodeAUIPC:
		value := pc + asUnsigned(ImmU(instr))
		if f.rd != 0 {
			rw = e.writeReg(f.rd, value)
		}

	case OpcodeJAL:
		if f.rd != 0 {
			rw = e.writeReg(f.rd, pc+4)
		}
		nextPC = asUnsigned(asSigned(pc) + ImmJ(instr))
		e.nextIsJumpTarget = true

	case OpcodeJALR:
		target := asUnsigned(asSigned(e.Regs.Get(f.rs1)) + ImmI(instr))
		target &^= 1
		if f.rd != 0 {
			rw = e.writeReg(f.rd, pc+4)
		}
		nextPC = target
		e.nextIsJumpTarget = true

	case OpcodeSystem:
		switch instr {
		case InstrECALL:
			result, h, derr := e.execECALL()
			if derr != nil {
				e.fatal(pc, derr)
				return false
			}
			rw = e.writeReg(10, result)
			halt = h
		case InstrEBREAK:
			halt = true
		default:
			e.fatal(pc, fmt.Errorf("unrecognized SYSTEM encoding 0x%08X", instr))
			return false
		}

	default:
		e.fatal(pc, fmt.Errorf("unknown opcode 0x%02X", f.opcode))
		return false
	}

	e.Regs.zeroX0()

	if e.Trace != nil {
		prefix := "  "
		if e.prevWasJump {
			prefix = "=>"
		}
		e.Trace.emit(e.Retired, prefix, pc, instr, e.Symbols, rw, mw)
	}
	e.prevWasJump = e.nextIsJumpTarget
	e.nextIsJumpTarget = false

	e.PC = nextPC

	if halt {
		e.running = false
		return false
	}
	return true
}

// writeReg sets register reg to value and returns a regWrite for the trace
// line iff the value actually changed (spec.md §4.6). Callers only invoke
// this for reg != 0; x0 is handled separately by zeroX0.
func (e *Engine) writeReg(reg, value uint32) *regWrite {
	prior := e.Regs.Get(reg)
	e.Regs.Set(reg, value)
	if value == prior {
		return nil
	}
	return &regWrite{reg: reg, value: value}
}

// fatal records a decode/dispatch fault (spec.md §7): it prints a single
// diagnostic naming the fault and the offending PC to stderr, then stops
// the loop. The retired count already includes the faulting instruction.
func (e *Engine) fatal(pc uint32, err error) {
	e.running = false
	e.FatalErr = err
	fmt.Fprintf(os.Stderr, "rv32imsim: fatal: %v (pc=0x%08X)\n", err, pc)
}

// Run executes instructions until the engine halts, then returns the
// accumulated statistics (spec.md §6, engine entry point).
func (e *Engine) Run() Stat {
	for e.Step() {
	}
	return Stat{Retired: e.Retired, Predictors: e.Predictors.Stats()}
}

// Simulate is the engine entry point spec.md §6 specifies:
// simulate(mem, start_addr, log_sink_or_null, symbols_or_null) -> Stat.
func Simulate(mem Memory, startAddr uint32, logSink io.Writer, symbols SymbolTable) Stat {
	e := NewEngine(mem, startAddr, logSink, symbols)
	return e.Run()
}

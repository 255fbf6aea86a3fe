// Package disasm renders a canonical textual form of a single RV32IM
// instruction word, used for execution tracing (spec.md §4.3).
package disasm

import (
	"fmt"
	"strconv"
	"strings"
)

// SymbolTable is consulted for future symbolic rendering of branch/jump
// targets. spec.md §4.3 explicitly permits a conforming implementation to
// ignore it; this one does, but accepts it to keep the call site stable
// if symbolic rendering is added later.
type SymbolTable interface {
	Lookup(addr uint32) (name string, ok bool)
}

const regPrefix = "x"

func reg(r uint32) string {
	return regPrefix + strconv.FormatUint(uint64(r), 10)
}

func signExtend(v uint32, n uint) int32 {
	shift := 32 - n
	return int32(v<<shift) >> shift
}

func immI(instr uint32) int32 { return signExtend(instr>>20, 12) }

func immS(instr uint32) int32 {
	raw := ((instr >> 25) << 5) | ((instr >> 7) & 0x1F)
	return signExtend(raw, 12)
}

func immB(instr uint32) int32 {
	raw := ((instr >> 31) << 12) |
		(((instr >> 7) & 0x1) << 11) |
		(((instr >> 25) & 0x3F) << 5) |
		(((instr >> 8) & 0xF) << 1)
	return signExtend(raw, 13)
}

func immJ(instr uint32) int32 {
	raw := ((instr >> 31) << 20) |
		(((instr >> 12) & 0xFF) << 12) |
		(((instr >> 20) & 0x1) << 11) |
		(((instr >> 21) & 0x3FF) << 1)
	return signExtend(raw, 21)
}

// Disassemble renders a single instruction word fetched at addr into a
// canonical textual form. It returns "" if buf has zero capacity, per
// spec.md §4.3. The symbols argument may be nil; it is accepted for a
// future symbolic rendering of branch/jump targets but currently unused.
func Disassemble(addr uint32, instr uint32, symbols SymbolTable, bufCap int) string {
	if bufCap <= 0 {
		return ""
	}

	opcode := instr & 0x7F
	rd := (instr >> 7) & 0x1F
	funct3 := (instr >> 12) & 0x7
	rs1 := (instr >> 15) & 0x1F
	rs2 := (instr >> 20) & 0x1F
	funct7 := (instr >> 25) & 0x7F

	var out string
	switch opcode {
	case 0x33: // R-type
		if mnem, ok := rTypeMnemonic(funct3, funct7); ok {
			out = fmt.Sprintf("%s %s, %s, %s", mnem, reg(rd), reg(rs1), reg(rs2))
		}
	case 0x13: // OP-IMM
		out = opImm(instr, rd, rs1, funct3)
	case 0x03: // loads
		if mnem, ok := loadMnemonic(funct3); ok {
			out = fmt.Sprintf("%s %s, %d(%s)", mnem, reg(rd), immI(instr), reg(rs1))
		}
	case 0x23: // stores
		if mnem, ok := storeMnemonic(funct3); ok {
			out = fmt.Sprintf("%s %s, %d(%s)", mnem, reg(rs2), immS(instr), reg(rs1))
		}
	case 0x63: // branches
		if mnem, ok := branchMnemonic(funct3); ok {
			target := addr + uint32(immB(instr))
			out = fmt.Sprintf("%s %s, %s, 0x%X", mnem, reg(rs1), reg(rs2), target)
		}
	case 0x37:
		out = fmt.Sprintf("lui %s, 0x%X", reg(rd), uint32(immU(instr))>>12)
	case 0x17:
		out = fmt.Sprintf("auipc %s, 0x%X", reg(rd), uint32(immU(instr))>>12)
	case 0x6F:
		target := addr + uint32(immJ(instr))
		out = fmt.Sprintf("jal %s, 0x%X", reg(rd), target)
	case 0x67:
		if funct3 == 0 {
			out = fmt.Sprintf("jalr %s, %s, %d", reg(rd), reg(rs1), immI(instr))
		}
	case 0x73:
		switch instr {
		case 0x00000073:
			out = "ecall"
		case 0x00100073:
			out = "ebreak"
		}
	}

	if out == "" {
		out = fmt.Sprintf(".word 0x%08X", instr)
	}

	if len(out) > bufCap {
		out = out[:bufCap]
	}
	return out
}

func immU(instr uint32) int32 {
	return int32(instr & 0xFFFFF000)
}

func rTypeMnemonic(funct3, funct7 uint32) (string, bool) {
	switch {
	case funct3 == 0 && funct7 == 0x00:
		return "add", true
	case funct3 == 0 && funct7 == 0x20:
		return "sub", true
	case funct3 == 0 && funct7 == 0x01:
		return "mul", true
	case funct3 == 1 && funct7 == 0x00:
		return "sll", true
	case funct3 == 1 && funct7 == 0x01:
		return "mulh", true
	case funct3 == 2 && funct7 == 0x00:
		return "slt", true
	case funct3 == 2 && funct7 == 0x01:
		return "mulhsu", true
	case funct3 == 3 && funct7 == 0x00:
		return "sltu", true
	case funct3 == 3 && funct7 == 0x01:
		return "mulhu", true
	case funct3 == 4 && funct7 == 0x00:
		return "xor", true
	case funct3 == 4 && funct7 == 0x01:
		return "div", true
	case funct3 == 5 && funct7 == 0x00:
		return "srl", true
	case funct3 == 5 && funct7 == 0x20:
		return "sra", true
	case funct3 == 5 && funct7 == 0x01:
		return "divu", true
	case funct3 == 6 && funct7 == 0x00:
		return "or", true
	case funct3 == 6 && funct7 == 0x01:
		return "rem", true
	case funct3 == 7 && funct7 == 0x00:
		return "and", true
	case funct3 == 7 && funct7 == 0x01:
		return "remu", true
	default:
		return "", false
	}
}

func opImm(instr uint32, rd, rs1, funct3 uint32) string {
	imm := immI(instr)
	shamt := (instr >> 20) & 0x1F
	switch funct3 {
	case 0:
		return fmt.Sprintf("addi %s, %s, %d", reg(rd), reg(rs1), imm)
	case 1:
		if (instr>>25)&0x7F == 0 {
			return fmt.Sprintf("slli %s, %s, %d", reg(rd), reg(rs1), shamt)
		}
	case 2:
		return fmt.Sprintf("slti %s, %s, %d", reg(rd), reg(rs1), imm)
	case 3:
		return fmt.Sprintf("sltiu %s, %s, %d", reg(rd), reg(rs1), imm)
	case 4:
		return fmt.Sprintf("xori %s, %s, %d", reg(rd), reg(rs1), imm)
	case 5:
		if (instr>>30)&0x1 == 1 {
			return fmt.Sprintf("srai %s, %s, %d", reg(rd), reg(rs1), shamt)
		}
		if (instr>>25)&0x7F == 0 {
			return fmt.Sprintf("srli %s, %s, %d", reg(rd), reg(rs1), shamt)
		}
	case 6:
		return fmt.Sprintf("ori %s, %s, %d", reg(rd), reg(rs1), imm)
	case 7:
		return fmt.Sprintf("andi %s, %s, %d", reg(rd), reg(rs1), imm)
	}
	return ""
}

func loadMnemonic(funct3 uint32) (string, bool) {
	switch funct3 {
	case 0:
		return "lb", true
	case 1:
		return "lh", true
	case 2:
		return "lw", true
	case 4:
		return "lbu", true
	case 5:
		return "lhu", true
	default:
		return "", false
	}
}

func storeMnemonic(funct3 uint32) (string, bool) {
	switch funct3 {
	case 0:
		return "sb", true
	case 1:
		return "sh", true
	case 2:
		return "sw", true
	default:
		return "", false
	}
}

func branchMnemonic(funct3 uint32) (string, bool) {
	switch funct3 {
	case 0:
		return "beq", true
	case 1:
		return "bne", true
	case 4:
		return "blt", true
	case 5:
		return "bge", true
	case 6:
		return "bltu", true
	case 7:
		return "bgeu", true
	default:
		return "", false
	}
}

// Pad appends spaces to s until it is width columns wide, keeping the text
// at the left of the column; a string already width or more long is
// returned unchanged, never truncated. Used by the trace emitter to align
// the disassembly column (spec.md §4.6).
func Pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

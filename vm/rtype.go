package vm

import "fmt"

// execRType dispatches opcode 0x33 (R-type OP and the RV32M
// multiply/divide extension) per spec.md §4.5's R-type table.
func execRType(funct3, funct7, a, b uint32) (uint32, error) {
	switch {
	case funct3 == 0 && funct7 == Funct7Base:
		return a + b, nil
	case funct3 == 0 && funct7 == Funct7Alt:
		return a - b, nil
	case funct3 == 0 && funct7 == Funct7MExt:
		return a * b, nil
	case funct3 == 1 && funct7 == Funct7Base:
		return logicalShiftLeft(a, b), nil
	case funct3 == 1 && funct7 == Funct7MExt:
		return Mulh(a, b), nil
	case funct3 == 2 && funct7 == Funct7Base:
		return sltSigned(a, b), nil
	case funct3 == 2 && funct7 == Funct7MExt:
		return Mulhsu(a, b), nil
	case funct3 == 3 && funct7 == Funct7Base:
		return sltUnsigned(a, b), nil
	case funct3 == 3 && funct7 == Funct7MExt:
		return Mulhu(a, b), nil
	case funct3 == 4 && funct7 == Funct7Base:
		return a ^ b, nil
	case funct3 == 4 && funct7 == Funct7MExt:
		return div32(a, b), nil
	case funct3 == 5 && funct7 == Funct7Base:
		return logicalShiftRight(a, b), nil
	case funct3 == 5 && funct7 == Funct7Alt:
		return arithShiftRight(a, b), nil
	case funct3 == 5 && funct7 == Funct7MExt:
		return divu32(a, b), nil
	case funct3 == 6 && funct7 == Funct7Base:
		return a | b, nil
	case funct3 == 6 && funct7 == Funct7MExt:
		return rem32(a, b), nil
	case funct3 == 7 && funct7 == Funct7Base:
		return a & b, nil
	case funct3 == 7 && funct7 == Funct7MExt:
		return remu32(a, b), nil
	default:
		return 0, fmt.Errorf("unknown R-type encoding: funct3=0x%X funct7=0x%X", funct3, funct7)
	}
}

// execOpImm dispatches opcode 0x13 (OP-IMM): addi/andi/ori/xori/slti/
// sltiu/slli/srli/srai. shamt is instr[24:20]; SRAI is distinguished by
// instr[30]==1 per spec.md §4.5.
func execOpImm(funct3 uint32, srai bool, a uint32, imm int32, shamt uint32) (uint32, error) {
	switch funct3 {
	case 0:
		return asUnsigned(asSigned(a) + imm), nil
	case 1:
		return logicalShiftLeft(a, shamt), nil
	case 2:
		return sltSigned(a, asUnsigned(imm)), nil
	case 3:
		return sltUnsigned(a, asUnsigned(imm)), nil
	case 4:
		return a ^ asUnsigned(imm), nil
	case 5:
		if srai {
			return arithShiftRight(a, shamt), nil
		}
		return logicalShiftRight(a, shamt), nil
	case 6:
		return a | asUnsigned(imm), nil
	case 7:
		return a & asUnsigned(imm), nil
	default:
		return 0, fmt.Errorf("unknown OP-IMM funct3=0x%X", funct3)
	}
}

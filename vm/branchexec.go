package vm

import "fmt"

// evalBranch evaluates beq/bne/blt/bge/bltu/bgeu per spec.md §4.5's
// branch table and returns whether the branch is taken.
func evalBranch(funct3, a, b uint32) (bool, error) {
	switch funct3 {
	case Funct3BEQ:
		return a == b, nil
	case Funct3BNE:
		return a != b, nil
	case Funct3BLT:
		return asSigned(a) < asSigned(b), nil
	case Funct3BGE:
		return asSigned(a) >= asSigned(b), nil
	case Funct3BLTU:
		return a < b, nil
	case Funct3BGEU:
		return a >= b, nil
	default:
		return false, fmt.Errorf("unknown branch funct3=0x%X", funct3)
	}
}

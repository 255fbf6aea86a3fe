package vm

import "fmt"

// execLoad performs lb/lh/lw/lbu/lhu at addr via mem, returning the
// sign- or zero-extended 32-bit value per spec.md §4.5. Alignment is the
// memory collaborator's responsibility, not the engine's (spec.md §4.5,
// §7).
func execLoad(mem Memory, funct3, addr uint32) (uint32, error) {
	switch funct3 {
	case Funct3LB:
		b, err := mem.ReadByte(addr)
		if err != nil {
			return 0, err
		}
		return asUnsigned(int32(int8(b))), nil
	case Funct3LH:
		h, err := mem.ReadHalf(addr)
		if err != nil {
			return 0, err
		}
		return asUnsigned(int32(int16(h))), nil
	case Funct3LW:
		return mem.ReadWord(addr)
	case Funct3LBU:
		b, err := mem.ReadByte(addr)
		if err != nil {
			return 0, err
		}
		return uint32(b), nil
	case Funct3LHU:
		h, err := mem.ReadHalf(addr)
		if err != nil {
			return 0, err
		}
		return uint32(h), nil
	default:
		return 0, fmt.Errorf("unknown load funct3=0x%X", funct3)
	}
}

// execStore performs sb/sh/sw at addr via mem, truncating value to the
// store's width. It returns the store's width in bytes for the trace
// emitter.
func execStore(mem Memory, funct3, addr, value uint32) (width int, err error) {
	switch funct3 {
	case Funct3SB:
		return 1, mem.WriteByte(addr, byte(value))
	case Funct3SH:
		return 2, mem.WriteHalf(addr, uint16(value))
	case Funct3SW:
		return 4, mem.WriteWord(addr, value)
	default:
		return 0, fmt.Errorf("unknown store funct3=0x%X", funct3)
	}
}

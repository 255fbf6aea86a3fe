package vm

// Immediate decoders extract and sign-extend the I/S/B/U/J-format
// immediates from a 32-bit instruction word. Each is a pure function:
// same input, same output, no VM state involved. Bit layouts follow
// spec.md §4.1 (RISC-V ISA manual table 24.2).

// signExtend treats v as an n-bit two's-complement value and sign-extends
// it to the full width of a signed 32-bit integer.
func signExtend(v uint32, n uint) int32 {
	shift := 32 - n
	return int32(v<<shift) >> shift
}

// ImmI decodes the I-format immediate: instr[31:20] -> imm[11:0].
func ImmI(instr uint32) int32 {
	return signExtend(instr>>20, 12)
}

// ImmS decodes the S-format immediate: instr[31:25] -> imm[11:5],
// instr[11:7] -> imm[4:0].
func ImmS(instr uint32) int32 {
	raw := ((instr >> 25) << 5) | ((instr >> 7) & 0x1F)
	return signExtend(raw, 12)
}

// ImmB decodes the B-format immediate: instr[31]->imm[12], instr[7]->imm[11],
// instr[30:25]->imm[10:5], instr[11:8]->imm[4:1], imm[0]=0.
func ImmB(instr uint32) int32 {
	raw := ((instr >> 31) << 12) |
		(((instr >> 7) & 0x1) << 11) |
		(((instr >> 25) & 0x3F) << 5) |
		(((instr >> 8) & 0xF) << 1)
	return signExtend(raw, 13)
}

// ImmU decodes the U-format immediate: instr[31:12] -> imm[31:12], imm[11:0]=0.
// No sign-extension is applied beyond the natural bit pattern.
func ImmU(instr uint32) int32 {
	return int32(instr & 0xFFFFF000)
}

// ImmJ decodes the J-format immediate: instr[31]->imm[20], instr[19:12]->imm[19:12],
// instr[20]->imm[11], instr[30:21]->imm[10:1], imm[0]=0.
func ImmJ(instr uint32) int32 {
	raw := ((instr >> 31) << 20) |
		(((instr >> 12) & 0xFF) << 12) |
		(((instr >> 20) & 0x1) << 11) |
		(((instr >> 21) & 0x3FF) << 1)
	return signExtend(raw, 21)
}

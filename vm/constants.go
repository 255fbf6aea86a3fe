package vm

// Opcode field values (instr[6:0]).
const (
	OpcodeOP       = 0x33 // register-register ALU / MUL / DIV / REM
	OpcodeOPIMM    = 0x13 // register-immediate ALU
	OpcodeLoad     = 0x03 // LB/LH/LW/LBU/LHU
	OpcodeStore    = 0x23 // SB/SH/SW
	OpcodeBranch   = 0x63 // BEQ/BNE/BLT/BGE/BLTU/BGEU
	OpcodeLUI      = 0x37
	OpcodeAUIPC    = 0x17
	OpcodeJAL      = 0x6F
	OpcodeJALR     = 0x67
	OpcodeSystem   = 0x73 // ECALL/EBREAK
)

// funct3 values shared by OP and OP-IMM.
const (
	Funct3ADDSUB = 0x0
	Funct3SLL    = 0x1
	Funct3SLT    = 0x2
	Funct3SLTU   = 0x3
	Funct3XOR    = 0x4
	Funct3SRx    = 0x5 // SRL/SRA
	Funct3OR     = 0x6
	Funct3AND    = 0x7
)

// funct3 values for branches.
const (
	Funct3BEQ  = 0x0
	Funct3BNE  = 0x1
	Funct3BLT  = 0x4
	Funct3BGE  = 0x5
	Funct3BLTU = 0x6
	Funct3BGEU = 0x7
)

// funct3 values for loads and stores.
const (
	Funct3LB  = 0x0
	Funct3LH  = 0x1
	Funct3LW  = 0x2
	Funct3LBU = 0x4
	Funct3LHU = 0x5

	Funct3SB = 0x0
	Funct3SH = 0x1
	Funct3SW = 0x2
)

// funct7 discriminators on OP.
const (
	Funct7Base = 0x00
	Funct7Alt  = 0x20 // SUB / SRA
	Funct7MExt = 0x01 // RV32M: MUL/MULH/MULHSU/MULHU/DIV/DIVU/REM/REMU
)

// SYSTEM encodings (funct3 is always 0 for ECALL/EBREAK).
const (
	InstrECALL  = 0x00000073
	InstrEBREAK = 0x00100073
)

// RegisterCount is the number of general-purpose registers, x0..x31.
const RegisterCount = 32

// ConditionalBranchSizes enumerates the predictor table sizes required by
// spec.md §4.4.
var ConditionalBranchSizes = [4]int{256, 1024, 4096, 16384}

// GHRMask masks the global history register to its 12-bit window.
const GHRMask = 0xFFF

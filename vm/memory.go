package vm

// Memory is the byte-addressable little-endian store the engine reads
// instructions and data from (spec.md §6, "Memory collaborator"). The
// engine neither creates nor destroys it; a concrete implementation
// lives in package memsys.
type Memory interface {
	ReadByte(addr uint32) (byte, error)
	WriteByte(addr uint32, v byte) error
	ReadHalf(addr uint32) (uint16, error)
	WriteHalf(addr uint32, v uint16) error
	ReadWord(addr uint32) (uint32, error)
	WriteWord(addr uint32, v uint32) error
}

// SymbolTable is the address-to-name lookup consulted only by the
// disassembler (spec.md §6, "Symbol-table collaborator"). It may be nil.
type SymbolTable interface {
	Lookup(addr uint32) (name string, ok bool)
}

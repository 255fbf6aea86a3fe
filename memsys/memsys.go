// Package memsys provides a flat, byte-addressable little-endian memory
// implementing the vm.Memory collaborator interface (spec.md §6). The
// core simulator never creates or destroys this store; callers (the
// loader, the CLI) own its lifetime, per spec.md §3's "Memory" row.
package memsys

import "fmt"

// Memory is a flat byte array addressed 0..len(data)-1. It is grounded on
// the teacher's vm/memory.go byte/halfword/word accessors, flattened from
// ARM's segmented, permission-checked model to the single address space
// spec.md's data model describes; see DESIGN.md.
type Memory struct {
	data []byte
}

// New allocates a flat memory of the given size in bytes.
func New(size uint32) *Memory {
	return &Memory{data: make([]byte, size)}
}

// NewFromImage allocates memory at least as large as base+len(image) and
// copies image in at base.
func NewFromImage(base uint32, image []byte) *Memory {
	size := base + uint32(len(image))
	m := New(size)
	copy(m.data[base:], image)
	return m
}

func (m *Memory) boundsCheck(addr uint32, width uint32) error {
	if uint64(addr)+uint64(width) > uint64(len(m.data)) {
		return fmt.Errorf("memory access out of range: addr=0x%08X width=%d size=0x%X", addr, width, len(m.data))
	}
	return nil
}

// ReadByte reads a single byte.
func (m *Memory) ReadByte(addr uint32) (byte, error) {
	if err := m.boundsCheck(addr, 1); err != nil {
		return 0, err
	}
	return m.data[addr], nil
}

// WriteByte writes a single byte.
func (m *Memory) WriteByte(addr uint32, v byte) error {
	if err := m.boundsCheck(addr, 1); err != nil {
		return err
	}
	m.data[addr] = v
	return nil
}

// ReadHalf reads a little-endian 16-bit halfword.
func (m *Memory) ReadHalf(addr uint32) (uint16, error) {
	if err := m.boundsCheck(addr, 2); err != nil {
		return 0, err
	}
	return uint16(m.data[addr]) | uint16(m.data[addr+1])<<8, nil
}

// WriteHalf writes a little-endian 16-bit halfword.
func (m *Memory) WriteHalf(addr uint32, v uint16) error {
	if err := m.boundsCheck(addr, 2); err != nil {
		return err
	}
	m.data[addr] = byte(v)
	m.data[addr+1] = byte(v >> 8)
	return nil
}

// ReadWord reads a little-endian 32-bit word.
func (m *Memory) ReadWord(addr uint32) (uint32, error) {
	if err := m.boundsCheck(addr, 4); err != nil {
		return 0, err
	}
	return uint32(m.data[addr]) |
		uint32(m.data[addr+1])<<8 |
		uint32(m.data[addr+2])<<16 |
		uint32(m.data[addr+3])<<24, nil
}

// WriteWord writes a little-endian 32-bit word.
func (m *Memory) WriteWord(addr uint32, v uint32) error {
	if err := m.boundsCheck(addr, 4); err != nil {
		return err
	}
	m.data[addr] = byte(v)
	m.data[addr+1] = byte(v >> 8)
	m.data[addr+2] = byte(v >> 16)
	m.data[addr+3] = byte(v >> 24)
	return nil
}

// Size returns the addressable size of this memory in bytes.
func (m *Memory) Size() uint32 {
	return uint32(len(m.data))
}

// LoadBytes copies data into memory starting at addr.
func (m *Memory) LoadBytes(addr uint32, data []byte) error {
	if err := m.boundsCheck(addr, uint32(len(data))); err != nil {
		return fmt.Errorf("failed to load program: %w", err)
	}
	copy(m.data[addr:], data)
	return nil
}

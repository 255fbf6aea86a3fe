// Package loader reads a program image into a memsys.Memory and reports
// the entry address, the collaborator spec.md §1 calls "deliberately out
// of scope" for the simulator core itself.
package loader

import (
	"bytes"
	"debug/elf"
	"fmt"
	"os"

	"github.com/lookbusy1344/rv32imsim/memsys"
	"github.com/lookbusy1344/rv32imsim/symbols"
)

// Image is a loaded program ready to run: its memory, entry address, and
// whatever symbol table the image carried (nil for flat binaries).
type Image struct {
	Memory  *memsys.Memory
	Entry   uint32
	Symbols *symbols.Table
}

// LoadFlat loads a raw flat binary image at loadAddr with the given entry
// address, sizing memory to loadAddr+len(data) rounded up to memSize if
// memSize is larger. It is grounded on the teacher's
// LoadProgramIntoVM's "place the image, report the max address used"
// shape, trimmed to raw bytes since there is no assembler/encoder in
// this spec's scope.
func LoadFlat(data []byte, loadAddr, entry, memSize uint32) (*Image, error) {
	size := loadAddr + uint32(len(data))
	if memSize > size {
		size = memSize
	}

	mem := memsys.New(size)
	if err := mem.LoadBytes(loadAddr, data); err != nil {
		return nil, fmt.Errorf("failed to load flat image: %w", err)
	}

	return &Image{Memory: mem, Entry: entry}, nil
}

// LoadFlatFile reads path and loads it as a flat binary via LoadFlat.
func LoadFlatFile(path string, loadAddr, entry, memSize uint32) (*Image, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-specified program image path
	if err != nil {
		return nil, fmt.Errorf("failed to read program image %q: %w", path, err)
	}
	return LoadFlat(data, loadAddr, entry, memSize)
}

// elfMagic is the four-byte ELF identification prefix.
var elfMagic = []byte{0x7F, 'E', 'L', 'F'}

// LoadFile reads path and loads it as an ELF32 image if it carries the
// ELF magic, falling back to a flat binary load at loadAddr otherwise.
// Per SPEC_FULL.md §5, ELF support is optional supplemental behavior:
// only PT_LOAD segments are mapped and only STT_FUNC/STT_OBJECT symbols
// with a name are carried into the symbol table.
func LoadFile(path string, loadAddr, entry, memSize uint32) (*Image, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-specified program image path
	if err != nil {
		return nil, fmt.Errorf("failed to read program image %q: %w", path, err)
	}

	if len(data) >= 4 && bytes.Equal(data[:4], elfMagic) {
		return loadELF(data, memSize)
	}

	return LoadFlat(data, loadAddr, entry, memSize)
}

func loadELF(data []byte, memSize uint32) (*Image, error) {
	f, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ELF image: %w", err)
	}
	defer f.Close()

	if f.Class != elf.ELFCLASS32 {
		return nil, fmt.Errorf("unsupported ELF class %v: only ELF32 is supported", f.Class)
	}
	if f.Machine != elf.EM_RISCV {
		return nil, fmt.Errorf("unsupported ELF machine %v: expected EM_RISCV", f.Machine)
	}

	var maxAddr uint32
	for _, prog := range f.Progs {
		if prog.Type != elf.PT_LOAD {
			continue
		}
		end := uint32(prog.Vaddr) + uint32(prog.Memsz)
		if end > maxAddr {
			maxAddr = end
		}
	}
	size := maxAddr
	if memSize > size {
		size = memSize
	}
	mem := memsys.New(size)

	for _, prog := range f.Progs {
		if prog.Type != elf.PT_LOAD {
			continue
		}
		buf := make([]byte, prog.Filesz)
		if _, err := prog.ReadAt(buf, 0); err != nil {
			return nil, fmt.Errorf("failed to read PT_LOAD segment at 0x%08X: %w", prog.Vaddr, err)
		}
		if err := mem.LoadBytes(uint32(prog.Vaddr), buf); err != nil {
			return nil, fmt.Errorf("failed to place PT_LOAD segment at 0x%08X: %w", prog.Vaddr, err)
		}
	}

	entries := make(map[string]uint32)
	if syms, err := f.Symbols(); err == nil {
		for _, sym := range syms {
			if sym.Name == "" {
				continue
			}
			switch elf.ST_TYPE(sym.Info) {
			case elf.STT_FUNC, elf.STT_OBJECT:
				entries[sym.Name] = uint32(sym.Value)
			}
		}
	}

	return &Image{
		Memory:  mem,
		Entry:   uint32(f.Entry),
		Symbols: symbols.New(entries),
	}, nil
}

// Package symbols provides the address-to-name lookup handed to the engine
// and disassembler (spec.md §6, "Symbol-table collaborator"). The
// disassembler accepts it without consulting it, and the termination
// report does not use it. It is immutable during simulation, grounded on
// the teacher's vm/symbol_resolver.go nearest-symbol resolution, trimmed
// to read-only Lookup/Resolve/Address operations.
package symbols

import "sort"

// Table is an immutable address<->name mapping.
type Table struct {
	byName    map[string]uint32
	byAddress map[uint32]string
	sorted    []uint32
}

// New builds a Table from a name->address mapping, such as one produced
// by an object-file loader's symbol section.
func New(entries map[string]uint32) *Table {
	t := &Table{
		byName:    make(map[string]uint32, len(entries)),
		byAddress: make(map[uint32]string, len(entries)),
	}
	for name, addr := range entries {
		t.byName[name] = addr
		t.byAddress[addr] = name
	}
	t.sorted = make([]uint32, 0, len(t.byAddress))
	for addr := range t.byAddress {
		t.sorted = append(t.sorted, addr)
	}
	sort.Slice(t.sorted, func(i, j int) bool { return t.sorted[i] < t.sorted[j] })
	return t
}

// Lookup returns the exact symbol name at addr, if any. It satisfies both
// vm.SymbolTable and disasm.SymbolTable structurally.
func (t *Table) Lookup(addr uint32) (string, bool) {
	if t == nil {
		return "", false
	}
	name, ok := t.byAddress[addr]
	return name, ok
}

// Resolve returns the nearest symbol at or before addr, with its offset.
func (t *Table) Resolve(addr uint32) (name string, offset uint32, ok bool) {
	if t == nil || len(t.sorted) == 0 {
		return "", 0, false
	}
	if n, exact := t.byAddress[addr]; exact {
		return n, 0, true
	}
	idx := sort.Search(len(t.sorted), func(i int) bool { return t.sorted[i] > addr })
	if idx == 0 {
		return "", 0, false
	}
	base := t.sorted[idx-1]
	return t.byAddress[base], addr - base, true
}

// Address looks up the address of a named symbol, e.g. the program's
// entry point.
func (t *Table) Address(name string) (uint32, bool) {
	if t == nil {
		return 0, false
	}
	addr, ok := t.byName[name]
	return addr, ok
}

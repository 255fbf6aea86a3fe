package symbols

import "testing"

func TestLookupExact(t *testing.T) {
	tbl := New(map[string]uint32{
		"_start": 0x0,
		"main":   0x100,
		"loop":   0x120,
	})

	name, ok := tbl.Lookup(0x100)
	if !ok || name != "main" {
		t.Errorf("Lookup(0x100) = (%q, %v), want (main, true)", name, ok)
	}

	if _, ok := tbl.Lookup(0x108); ok {
		t.Error("Lookup at a non-symbol address should miss")
	}
}

func TestLookupNilTable(t *testing.T) {
	var tbl *Table
	if _, ok := tbl.Lookup(0x100); ok {
		t.Error("Lookup on a nil table should report not found")
	}
}

func TestResolveExactAndOffset(t *testing.T) {
	tbl := New(map[string]uint32{
		"_start": 0x0,
		"main":   0x100,
		"loop":   0x120,
	})

	name, offset, ok := tbl.Resolve(0x100)
	if !ok || name != "main" || offset != 0 {
		t.Errorf("Resolve(0x100) = (%q, %d, %v), want (main, 0, true)", name, offset, ok)
	}

	name, offset, ok = tbl.Resolve(0x110)
	if !ok || name != "main" || offset != 0x10 {
		t.Errorf("Resolve(0x110) = (%q, %d, %v), want (main, 0x10, true)", name, offset, ok)
	}

	name, offset, ok = tbl.Resolve(0x130)
	if !ok || name != "loop" || offset != 0x10 {
		t.Errorf("Resolve(0x130) = (%q, %d, %v), want (loop, 0x10, true)", name, offset, ok)
	}
}

func TestResolveBeforeFirstSymbol(t *testing.T) {
	tbl := New(map[string]uint32{"main": 0x100})
	if _, _, ok := tbl.Resolve(0x10); ok {
		t.Error("Resolve before the first symbol should fail")
	}
}

func TestResolveNilOrEmptyTable(t *testing.T) {
	var nilTbl *Table
	if _, _, ok := nilTbl.Resolve(0x100); ok {
		t.Error("Resolve on a nil table should report not found")
	}

	empty := New(nil)
	if _, _, ok := empty.Resolve(0x100); ok {
		t.Error("Resolve on an empty table should report not found")
	}
}

func TestAddress(t *testing.T) {
	tbl := New(map[string]uint32{"main": 0x100})

	addr, ok := tbl.Address("main")
	if !ok || addr != 0x100 {
		t.Errorf("Address(main) = (0x%X, %v), want (0x100, true)", addr, ok)
	}

	if _, ok := tbl.Address("nonexistent"); ok {
		t.Error("Address for an unknown symbol should fail")
	}
}

func TestAddressNilTable(t *testing.T) {
	var tbl *Table
	if _, ok := tbl.Address("main"); ok {
		t.Error("Address on a nil table should report not found")
	}
}

func TestResolveUnsortedInputMap(t *testing.T) {
	// Map iteration order is randomized; Resolve must still binary-search
	// correctly regardless of insertion order.
	tbl := New(map[string]uint32{
		"z": 0x300,
		"a": 0x000,
		"m": 0x150,
	})

	name, offset, ok := tbl.Resolve(0x200)
	if !ok || name != "m" || offset != 0xB0 {
		t.Errorf("Resolve(0x200) = (%q, %d, %v), want (m, 0xB0, true)", name, offset, ok)
	}
}

package memsys

import "testing"

func TestReadWriteByte(t *testing.T) {
	m := New(16)
	if err := m.WriteByte(4, 0xAB); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	got, err := m.ReadByte(4)
	if err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	if got != 0xAB {
		t.Errorf("ReadByte(4) = 0x%X, want 0xAB", got)
	}
}

func TestReadWriteHalfLittleEndian(t *testing.T) {
	m := New(16)
	if err := m.WriteHalf(4, 0xBEEF); err != nil {
		t.Fatalf("WriteHalf: %v", err)
	}
	lo, _ := m.ReadByte(4)
	hi, _ := m.ReadByte(5)
	if lo != 0xEF || hi != 0xBE {
		t.Errorf("WriteHalf byte order: low=0x%X high=0x%X, want 0xEF/0xBE", lo, hi)
	}
	got, err := m.ReadHalf(4)
	if err != nil {
		t.Fatalf("ReadHalf: %v", err)
	}
	if got != 0xBEEF {
		t.Errorf("ReadHalf(4) = 0x%X, want 0xBEEF", got)
	}
}

func TestReadWriteWordLittleEndian(t *testing.T) {
	m := New(16)
	if err := m.WriteWord(0, 0xDEADBEEF); err != nil {
		t.Fatalf("WriteWord: %v", err)
	}
	bytes := []byte{0xEF, 0xBE, 0xAD, 0xDE}
	for i, want := range bytes {
		got, err := m.ReadByte(uint32(i))
		if err != nil {
			t.Fatalf("ReadByte(%d): %v", i, err)
		}
		if got != want {
			t.Errorf("byte %d = 0x%X, want 0x%X", i, got, want)
		}
	}
	got, err := m.ReadWord(0)
	if err != nil {
		t.Fatalf("ReadWord: %v", err)
	}
	if got != 0xDEADBEEF {
		t.Errorf("ReadWord(0) = 0x%X, want 0xDEADBEEF", got)
	}
}

func TestBoundsChecking(t *testing.T) {
	m := New(4)

	if _, err := m.ReadByte(4); err == nil {
		t.Error("ReadByte(4) on a 4-byte memory should fail")
	}
	if err := m.WriteByte(4, 1); err == nil {
		t.Error("WriteByte(4) on a 4-byte memory should fail")
	}
	if _, err := m.ReadHalf(3); err == nil {
		t.Error("ReadHalf(3) spanning past the end should fail")
	}
	if _, err := m.ReadWord(1); err == nil {
		t.Error("ReadWord(1) spanning past the end should fail")
	}
	if _, err := m.ReadByte(3); err != nil {
		t.Errorf("ReadByte(3) should be in range: %v", err)
	}
	if err := m.WriteWord(0, 0x11223344); err != nil {
		t.Errorf("WriteWord(0) on exactly-sized memory should succeed: %v", err)
	}
}

func TestNewFromImage(t *testing.T) {
	image := []byte{0x01, 0x02, 0x03, 0x04}
	m := NewFromImage(0x100, image)

	if got := m.Size(); got < 0x104 {
		t.Fatalf("Size() = %d, want >= 0x104", got)
	}
	for i, want := range image {
		got, err := m.ReadByte(0x100 + uint32(i))
		if err != nil {
			t.Fatalf("ReadByte: %v", err)
		}
		if got != want {
			t.Errorf("byte at 0x100+%d = 0x%X, want 0x%X", i, got, want)
		}
	}
}

func TestLoadBytes(t *testing.T) {
	m := New(32)
	data := []byte{0xAA, 0xBB, 0xCC}
	if err := m.LoadBytes(8, data); err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	for i, want := range data {
		got, err := m.ReadByte(8 + uint32(i))
		if err != nil {
			t.Fatalf("ReadByte: %v", err)
		}
		if got != want {
			t.Errorf("byte at 8+%d = 0x%X, want 0x%X", i, got, want)
		}
	}

	if err := m.LoadBytes(30, []byte{1, 2, 3, 4, 5}); err == nil {
		t.Error("LoadBytes overrunning the buffer should fail")
	}
}

func TestSize(t *testing.T) {
	m := New(1024)
	if got := m.Size(); got != 1024 {
		t.Errorf("Size() = %d, want 1024", got)
	}
}

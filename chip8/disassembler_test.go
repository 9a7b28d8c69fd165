package chip8

import "testing"

func TestDisassembleBasicOpcodes(t *testing.T) {
	cases := []struct {
		bytes []byte
		want  string
	}{
		{[]byte{0x00, 0xE0}, "CLS"},
		{[]byte{0x00, 0xEE}, "RET"},
		{[]byte{0x13, 0x00}, "JP 300"},
		{[]byte{0x63, 0x0A}, "LD V3, 0A"},
		{[]byte{0x80, 0x14}, "ADD V0, V1"},
		{[]byte{0xD0, 0x15}, "DRW V0, V1, 5"},
		{[]byte{0xF2, 0x1E}, "ADD I, V2"},
	}

	for _, tc := range cases {
		insns, err := Disassemble(tc.bytes)
		if err != nil {
			t.Fatalf("Disassemble(% X): %v", tc.bytes, err)
		}
		if len(insns) != 1 {
			t.Fatalf("Disassemble(% X) returned %d instructions, want 1", tc.bytes, len(insns))
		}
		if got := insns[0].String(); got != tc.want {
			t.Fatalf("Disassemble(% X) = %q, want %q", tc.bytes, got, tc.want)
		}
	}
}

func TestDisassembleRejectsOddLength(t *testing.T) {
	_, err := Disassemble([]byte{0x00})
	if err == nil {
		t.Fatal("expected error for odd-length input")
	}
}

func TestDisassembleUnknownOpcode(t *testing.T) {
	insns, err := Disassemble([]byte{0x80, 0x08}) // 8XY8 is undefined
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if insns[0].String() != "UNKNOWN (8008)" {
		t.Fatalf("String() = %q, want UNKNOWN (8008)", insns[0].String())
	}
	if insns[0].Description() != "UNKNOWN (8008)" {
		t.Fatalf("Description() = %q, want UNKNOWN (8008)", insns[0].Description())
	}
}

func TestDisassembleAgreesWithExecutorOpcode(t *testing.T) {
	insns, err := Disassemble([]byte{0xD3, 0x45})
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if insns[0].Opcode() != 0xD345 {
		t.Fatalf("Opcode() = %04X, want D345", insns[0].Opcode())
	}
}

func TestDisassembleASCII(t *testing.T) {
	insns, err := Disassemble([]byte{'H', 'i', 0x00, 0xE0})
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if got := insns[0].ASCII(); got != "Hi" {
		t.Fatalf("ASCII() = %q, want %q", got, "Hi")
	}
	if got := insns[1].ASCII(); got != "" {
		t.Fatalf("ASCII() of 00E0 = %q, want \"\" (0x00 not printable)", got)
	}
}

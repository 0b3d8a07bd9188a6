package arch

import "testing"

func TestLookup(t *testing.T) {
	for _, tc := range []struct {
		word uint16
		want int
	}{
		{0x00e0, CLS},
		{0x00ee, RET},
		{0x0123, SYS},
		{0x1200, JP},
		{0x2abc, CALL},
		{0x3a12, SEB},
		{0x4a12, SNEB},
		{0x5ab0, SE},
		{0x6a12, LDB},
		{0x7a12, ADDB},
		{0x8ab0, LD},
		{0x8ab4, ADD},
		{0x8abe, SHL},
		{0x8ab8, Unknown},
		{0x9ab0, SNE},
		{0xa202, LDI},
		{0xb202, JPV0},
		{0xca0f, RND},
		{0xd015, DRW},
		{0xe19e, SKP},
		{0xe1a1, SKNP},
		{0xe1ff, Unknown},
		{0xf00a, LDK},
		{0xf033, LDBCD},
		{0xf065, LOAD},
		{0xf0ff, Unknown},
	} {
		if have := Lookup(tc.word); have != tc.want {
			t.Fatalf("Lookup(%04x): want %d; have %d", tc.word, tc.want, have)
		}
	}
}

func TestDisassemble(t *testing.T) {
	for _, tc := range []struct {
		word uint16
		want string
	}{
		{0x00e0, "CLS"},
		{0xa202, "LD I, $202"},
		{0x600a, "LD V0, $0A"},
		{0xd015, "DRW V0, V1, $5"},
		{0x8ab5, "SUB VA, VB"},
		{0xbfff, "JP V0, $FFF"},
		{0xf355, "LD [I], V3"},
		{0xf365, "LD V3, [I]"},
		{0xe49e, "SKP V4"},
		{0x8ab8, "DW $8AB8"},
	} {
		if have := Disassemble(tc.word); have != tc.want {
			t.Fatalf("Disassemble(%04x): want %q; have %q", tc.word, tc.want, have)
		}
	}
}

func TestName(t *testing.T) {
	if _, ok := Name(Unknown); ok {
		t.Fatalf("expected Unknown to have no name")
	}

	for op := Unknown + 1; op < Count; op++ {
		if name, ok := Name(op); !ok || name == "" {
			t.Fatalf("opcode %d has no name", op)
		}
	}
}

func TestRegisterName(t *testing.T) {
	for n, want := range map[int]string{0: "V0", 9: "V9", 0xa: "VA", 0xf: "VF", 16: "", -1: ""} {
		if have := RegisterName(n); have != want {
			t.Fatalf("RegisterName(%d): want %q; have %q", n, want, have)
		}
	}
}

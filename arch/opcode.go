// Package arch defines the system's instruction set along with
// some related helper functions.
package arch

import "fmt"

// Known opcodes.
const (
	Unknown = iota

	SYS  // 0nnn
	CLS  // 00E0
	RET  // 00EE
	JP   // 1nnn
	CALL // 2nnn
	SEB  // 3xnn
	SNEB // 4xnn
	SE   // 5xy0
	LDB  // 6xnn
	ADDB // 7xnn

	LD   // 8xy0
	OR   // 8xy1
	AND  // 8xy2
	XOR  // 8xy3
	ADD  // 8xy4
	SUB  // 8xy5
	SHR  // 8xy6
	SUBN // 8xy7
	SHL  // 8xyE

	SNE  // 9xy0
	LDI  // Annn
	JPV0 // Bnnn
	RND  // Cxnn
	DRW  // Dxyn
	SKP  // Ex9E
	SKNP // ExA1

	LDDT  // Fx07
	LDK   // Fx0A
	SETDT // Fx15
	SETST // Fx18
	ADDI  // Fx1E
	LDF   // Fx29
	LDBCD // Fx33
	STORE // Fx55
	LOAD  // Fx65

	Count // Number of known opcodes, including Unknown.
)

// aluOps maps the low nibble of an 8xyn instruction to its opcode.
var aluOps = [16]int{
	0x0: LD,
	0x1: OR,
	0x2: AND,
	0x3: XOR,
	0x4: ADD,
	0x5: SUB,
	0x6: SHR,
	0x7: SUBN,
	0xe: SHL,
}

// keyOps maps the low byte of an Exnn instruction to its opcode.
var keyOps = map[byte]int{
	0x9e: SKP,
	0xa1: SKNP,
}

// miscOps maps the low byte of an Fxnn instruction to its opcode.
var miscOps = map[byte]int{
	0x07: LDDT,
	0x0a: LDK,
	0x15: SETDT,
	0x18: SETST,
	0x1e: ADDI,
	0x29: LDF,
	0x33: LDBCD,
	0x55: STORE,
	0x65: LOAD,
}

// families maps the high nibble of an instruction word to the opcode
// it selects. Families with a sub-selector are resolved in Lookup.
var families = [16]int{
	0x1: JP,
	0x2: CALL,
	0x3: SEB,
	0x4: SNEB,
	0x5: SE,
	0x6: LDB,
	0x7: ADDB,
	0x9: SNE,
	0xa: LDI,
	0xb: JPV0,
	0xc: RND,
	0xd: DRW,
}

// Lookup returns the opcode encoded by the given instruction word.
// Returns Unknown if the word does not encode a known instruction.
func Lookup(word uint16) int {
	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00e0:
			return CLS
		case 0x00ee:
			return RET
		}
		return SYS
	case 0x8:
		return aluOps[word&0xf]
	case 0xe:
		return keyOps[byte(word)]
	case 0xf:
		return miscOps[byte(word)]
	}
	return families[word>>12]
}

var names = [Count]string{
	SYS:   "SYS",
	CLS:   "CLS",
	RET:   "RET",
	JP:    "JP",
	CALL:  "CALL",
	SEB:   "SE",
	SNEB:  "SNE",
	SE:    "SE",
	LDB:   "LD",
	ADDB:  "ADD",
	LD:    "LD",
	OR:    "OR",
	AND:   "AND",
	XOR:   "XOR",
	ADD:   "ADD",
	SUB:   "SUB",
	SHR:   "SHR",
	SUBN:  "SUBN",
	SHL:   "SHL",
	SNE:   "SNE",
	LDI:   "LD",
	JPV0:  "JP",
	RND:   "RND",
	DRW:   "DRW",
	SKP:   "SKP",
	SKNP:  "SKNP",
	LDDT:  "LD",
	LDK:   "LD",
	SETDT: "LD",
	SETST: "LD",
	ADDI:  "ADD",
	LDF:   "LD",
	LDBCD: "LD",
	STORE: "LD",
	LOAD:  "LD",
}

// Name returns the mnemonic for the given opcode.
// Returns false if the opcode is not recognized.
func Name(opcode int) (string, bool) {
	if opcode <= Unknown || opcode >= Count {
		return "", false
	}
	return names[opcode], true
}

// Operands returns the operand list of the given instruction word,
// formatted for a listing. opcode must be the result of Lookup(word).
func Operands(opcode int, word uint16) string {
	x := RegisterName(int(word>>8) & 0xf)
	y := RegisterName(int(word>>4) & 0xf)
	n := word & 0xf
	nn := word & 0xff
	nnn := word & 0xfff

	switch opcode {
	case CLS, RET:
		return ""
	case SYS, JP, CALL:
		return fmt.Sprintf("$%03X", nnn)
	case SEB, SNEB, LDB, ADDB, RND:
		return fmt.Sprintf("%s, $%02X", x, nn)
	case SE, SNE, LD, OR, AND, XOR, ADD, SUB, SHR, SUBN, SHL:
		return fmt.Sprintf("%s, %s", x, y)
	case LDI:
		return fmt.Sprintf("I, $%03X", nnn)
	case JPV0:
		return fmt.Sprintf("V0, $%03X", nnn)
	case DRW:
		return fmt.Sprintf("%s, %s, $%X", x, y, n)
	case SKP, SKNP:
		return x
	case LDDT:
		return x + ", DT"
	case LDK:
		return x + ", K"
	case SETDT:
		return "DT, " + x
	case SETST:
		return "ST, " + x
	case ADDI:
		return "I, " + x
	case LDF:
		return "F, " + x
	case LDBCD:
		return "B, " + x
	case STORE:
		return "[I], " + x
	case LOAD:
		return x + ", [I]"
	}
	return fmt.Sprintf("$%04X", word)
}

// Disassemble returns the assembly representation of the given instruction word.
// Words which do not encode a known instruction are emitted as data.
func Disassemble(word uint16) string {
	opcode := Lookup(word)
	name, ok := Name(opcode)
	if !ok {
		return fmt.Sprintf("DW $%04X", word)
	}

	if args := Operands(opcode, word); args != "" {
		return name + " " + args
	}
	return name
}

package arch

import "fmt"

// RegisterCount defines the number of general purpose registers.
const RegisterCount = 16

// RegisterName returns the name associated with the given register index.
// Returns "" if the index is not recognized.
func RegisterName(n int) string {
	if n < 0 || n >= RegisterCount {
		return ""
	}
	return fmt.Sprintf("V%X", n)
}

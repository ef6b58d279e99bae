package radius

import (
	"fmt"
	"strings"
)

// HexDump renders the encoded attribute region as a "offset  hex  ascii"
// listing, sixteen octets per line, for CLI diagnostics
// It is never used on the encode hot path.
func HexDump(data []byte) string {
	var b strings.Builder

	for offset := 0; offset < len(data); offset += 16 {
		end := offset + 16
		if end > len(data) {
			end = len(data)
		}
		line := data[offset:end]

		fmt.Fprintf(&b, "%04x  ", offset)
		for i := range 16 {
			if i < len(line) {
				fmt.Fprintf(&b, "%02x ", line[i])
			} else {
				b.WriteString("   ")
			}
			if i == 7 {
				b.WriteByte(' ')
			}
		}

		b.WriteString(" |")
		for _, c := range line {
			if c >= 0x20 && c < 0x7f {
				b.WriteByte(c)
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteString("|\n")
	}

	return b.String()
}

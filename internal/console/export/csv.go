package export

import (
	"bufio"
	"io"
	"strings"
)

// CSV writes t with every field quoted and embedded quotes doubled.
// Lines end in "\n" and the header comes first.
func CSV(w io.Writer, t Table) error {
	bw := bufio.NewWriter(w)

	writeLine := func(fields []string) {
		for i, field := range fields {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteByte('"')
			bw.WriteString(strings.ReplaceAll(field, `"`, `""`))
			bw.WriteByte('"')
		}
	}

	writeLine(t.Header)
	for _, row := range t.Rows {
		bw.WriteByte('\n')
		writeLine(row)
	}

	return bw.Flush()
}

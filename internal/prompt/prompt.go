// Package prompt asks the operator yes/no questions on a terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm writes question to out and reads a single line from in.
// Only "y" or "Y" counts as yes; just the line ending is stripped, so
// "yes" and " y" are no.
// Read errors, including EOF before any input, count as no.
func Confirm(in io.Reader, out io.Writer, question string) bool {
	if _, err := fmt.Fprint(out, question); err != nil {
		return false
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	return strings.EqualFold(strings.TrimRight(line, "\r\n"), "y")
}

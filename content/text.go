package content

import (
	"errors"
	"fmt"
	"strings"
)

// MaxTextLines is the most lines the print text may have.
const MaxTextLines = 3

// ErrTooManyLines is returned for text longer than MaxTextLines.
var ErrTooManyLines = errors.New("max 3 lines")

// LineCount returns the number of lines in s; empty text has none.
func LineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

// ValidateText checks s against the line limit.
func ValidateText(s string) error {
	if n := LineCount(s); n > MaxTextLines {
		return fmt.Errorf("%d lines: %w", n, ErrTooManyLines)
	}
	return nil
}

// Present reports whether s counts as content for the text element.
func Present(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Editor is a small line editor for the print text that never lets the
// text exceed the line limit.
type Editor struct {
	text string
}

// NewEditor starts editing s. Lines past the limit are dropped.
func NewEditor(s string) *Editor {
	lines := strings.Split(s, "\n")
	if len(lines) > MaxTextLines {
		lines = lines[:MaxTextLines]
	}
	return &Editor{text: strings.Join(lines, "\n")}
}

// Text returns the current text.
func (e *Editor) Text() string {
	return e.text
}

// Insert appends runes at the end. A newline that would exceed the line
// limit is refused and Insert returns ErrTooManyLines.
func (e *Editor) Insert(rs ...rune) error {
	for _, r := range rs {
		next := e.text + string(r)
		if err := ValidateText(next); err != nil {
			return err
		}
		e.text = next
	}
	return nil
}

// Backspace removes the last rune.
func (e *Editor) Backspace() {
	rs := []rune(e.text)
	if len(rs) == 0 {
		return
	}
	e.text = string(rs[:len(rs)-1])
}

// Remaining returns how many more lines may be added.
func (e *Editor) Remaining() int {
	return MaxTextLines - LineCount(e.text)
}

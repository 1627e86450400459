package wrapgen

import "strings"

// Text is a file's content split into lines, plus what is needed to join
// the lines back byte-for-byte.
type Text struct {
	Lines           []string
	LineEnding      string
	TrailingNewline bool
}

// SplitText splits content into lines without their terminators. A file
// using "\r\n" for the majority of its lines keeps that ending on output.
func SplitText(content string) Text {
	t := Text{LineEnding: "\n"}
	if content == "" {
		return t
	}

	crlf := strings.Count(content, "\r\n")
	lf := strings.Count(content, "\n")
	if crlf > 0 && crlf*2 >= lf {
		t.LineEnding = "\r\n"
	}

	t.TrailingNewline = strings.HasSuffix(content, "\n")
	body := content
	if t.TrailingNewline {
		body = strings.TrimSuffix(body, "\n")
	}

	t.Lines = strings.Split(body, "\n")
	for i, line := range t.Lines {
		t.Lines[i] = strings.TrimSuffix(line, "\r")
	}
	return t
}

// Join renders lines with the receiver's line ending and trailing newline.
func (t Text) Join(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString(t.LineEnding)
		}
		b.WriteString(line)
	}
	if t.TrailingNewline {
		b.WriteString(t.LineEnding)
	}
	return b.String()
}

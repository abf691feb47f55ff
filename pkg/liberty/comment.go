package liberty

// StripComments removes // line comments and /* */ block comments from
// Liberty source text.
//
// Comment bytes are overwritten with spaces and newlines are kept, so every
// byte offset and line number in the returned text matches the input. A
// comment opener inside a double-quoted string is not a comment: the scan
// carries quote state character by character, including backslash escapes.
//
// A block comment still open at end of input returns ErrUnterminatedComment.
func StripComments(src string) (string, error) {
	const (
		stCode = iota
		stString
		stLine
		stBlock
	)

	out := []byte(src)
	state := stCode

	for i := 0; i < len(out); i++ {
		c := out[i]
		switch state {
		case stCode:
			switch {
			case c == '"':
				state = stString
			case c == '/' && i+1 < len(out) && out[i+1] == '/':
				out[i], out[i+1] = ' ', ' '
				i++
				state = stLine
			case c == '/' && i+1 < len(out) && out[i+1] == '*':
				out[i], out[i+1] = ' ', ' '
				i++
				state = stBlock
			}
		case stString:
			switch c {
			case '\\':
				i++ // escaped character, even an escaped quote
			case '"':
				state = stCode
			}
		case stLine:
			if c == '\n' {
				state = stCode
			} else {
				out[i] = ' '
			}
		case stBlock:
			switch {
			case c == '*' && i+1 < len(out) && out[i+1] == '/':
				out[i], out[i+1] = ' ', ' '
				i++
				state = stCode
			case c != '\n':
				out[i] = ' '
			}
		}
	}

	if state == stBlock {
		return "", ErrUnterminatedComment
	}
	return string(out), nil
}

// lineAt returns the 1-based line number of byte offset off in src.
func lineAt(src string, off int) int {
	if off > len(src) {
		off = len(src)
	}
	line := 1
	for i := 0; i < off; i++ {
		if src[i] == '\n' {
			line++
		}
	}
	return line
}

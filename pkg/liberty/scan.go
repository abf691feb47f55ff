package liberty

import "strings"

// The scanner walks one group body and yields its statements. Liberty bodies
// contain three statement shapes:
//
//	key : value ;
//	key ( v1, v2, ... ) ;
//	key ( args ) { body }
//
// All scanning is quote-aware: braces, parentheses, commas and semicolons
// inside double-quoted strings are data, not structure.

type stmtKind int

const (
	stmtSimple stmtKind = iota
	stmtComplex
	stmtGroup
)

type stmt struct {
	kind    stmtKind
	key     string
	value   string   // simple: raw value text, still quoted
	args    []string // complex/group: raw arguments, still quoted
	body    string   // group: body span between the braces
	bodyOff int      // group: absolute offset of body start
	off     int      // absolute offset of the statement key
}

// scanner iterates statements over the byte span [pos, end) of src. Offsets
// are absolute in src so diagnostics can report source line numbers.
type scanner struct {
	src string
	pos int
	end int
}

func newScanner(src string, start, end int) *scanner {
	return &scanner{src: src, pos: start, end: end}
}

// next returns the next statement. ok is false at the end of the span.
// A group whose braces never balance returns ErrUnbalancedGroup.
func (s *scanner) next() (st stmt, ok bool, err error) {
	s.skipSpace()
	if s.pos >= s.end {
		return stmt{}, false, nil
	}

	st.off = s.pos
	keyStart := s.pos
	for s.pos < s.end && !isStmtDelim(s.src[s.pos]) {
		s.pos++
	}
	st.key = strings.TrimSpace(s.src[keyStart:s.pos])
	if s.pos >= s.end {
		// Trailing text without a delimiter carries no statement.
		return stmt{}, false, nil
	}

	switch s.src[s.pos] {
	case ';':
		s.pos++
		st.kind = stmtSimple
		return st, true, nil

	case ':':
		s.pos++
		val, err := s.scanUntil(';')
		if err != nil {
			// Unterminated scalar at end of span: keep what is there.
			val = strings.TrimSpace(s.src[s.pos:s.end])
			s.pos = s.end
		}
		st.kind = stmtSimple
		st.value = val
		return st, true, nil

	case '(':
		s.pos++
		inner, err := s.scanUntil(')')
		if err != nil {
			return stmt{}, false, err
		}
		st.args = splitArgs(inner)
		s.skipSpace()
		if s.pos < s.end && s.src[s.pos] == '{' {
			s.pos++
			st.bodyOff = s.pos
			closing, err := matchBrace(s.src, s.pos, s.end)
			if err != nil {
				return stmt{}, false, err
			}
			st.kind = stmtGroup
			st.body = s.src[st.bodyOff:closing]
			s.pos = closing + 1
			return st, true, nil
		}
		if s.pos < s.end && s.src[s.pos] == ';' {
			s.pos++
		}
		st.kind = stmtComplex
		return st, true, nil

	default: // '{' or '}' where a delimiter was expected; skip one byte
		s.pos++
		return s.next()
	}
}

// scanUntil consumes up to and including the next unquoted stop byte and
// returns the trimmed text before it.
func (s *scanner) scanUntil(stop byte) (string, error) {
	start := s.pos
	inStr := false
	for ; s.pos < s.end; s.pos++ {
		c := s.src[s.pos]
		if inStr {
			switch c {
			case '\\':
				s.pos++
			case '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case stop:
			text := strings.TrimSpace(s.src[start:s.pos])
			s.pos++
			return text, nil
		}
	}
	return "", ErrUnbalancedGroup
}

func (s *scanner) skipSpace() {
	for s.pos < s.end && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

// matchBrace returns the index of the '}' that closes the brace opened just
// before from, counting depth and ignoring braces inside quoted strings.
// The search is bounded by end, so malformed input cannot loop.
func matchBrace(src string, from, end int) (int, error) {
	depth := 1
	inStr := false
	for i := from; i < end; i++ {
		c := src[i]
		if inStr {
			switch c {
			case '\\':
				i++
			case '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, ErrUnbalancedGroup
}

// groupHeader locates one `name ( args ) {` occurrence.
type groupHeader struct {
	name      string // the single header argument, unquoted
	off       int    // offset of the group keyword
	bodyStart int    // offset just past the opening brace
}

// findGroupHeaders scans [start, end) of src for group headers with the
// given keyword, e.g. every `cell ( NAME ) {`. The scan is linear and
// quote-aware; it does not depend on surrounding groups being balanced, so a
// header after a malformed sibling is still found.
func findGroupHeaders(src string, start, end int, keyword string) []groupHeader {
	var headers []groupHeader
	inStr := false
	for i := start; i < end; i++ {
		c := src[i]
		if inStr {
			switch c {
			case '\\':
				i++
			case '"':
				inStr = false
			}
			continue
		}
		if c == '"' {
			inStr = true
			continue
		}
		if c != keyword[0] || !hasWordAt(src, i, keyword) {
			continue
		}
		if i > start && isIdentByte(src[i-1]) {
			continue // inside a longer identifier
		}
		j := i + len(keyword)
		for j < end && isSpace(src[j]) {
			j++
		}
		if j >= end || src[j] != '(' {
			continue
		}
		argStart := j + 1
		for j = argStart; j < end && src[j] != ')'; j++ {
		}
		if j >= end {
			continue
		}
		arg := strings.TrimSpace(src[argStart:j])
		for j++; j < end && isSpace(src[j]); j++ {
		}
		if j >= end || src[j] != '{' {
			continue
		}
		headers = append(headers, groupHeader{
			name:      unquote(arg),
			off:       i,
			bodyStart: j + 1,
		})
		i = j
	}
	return headers
}

func hasWordAt(src string, i int, word string) bool {
	if i+len(word) > len(src) || src[i:i+len(word)] != word {
		return false
	}
	if i+len(word) < len(src) && isIdentByte(src[i+len(word)]) {
		return false
	}
	return true
}

func isStmtDelim(c byte) bool {
	return c == ':' || c == ';' || c == '(' || c == '{' || c == '}'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

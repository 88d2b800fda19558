// Package scan turns classified diff lines into logical lines: it masks
// string and comment contents, balances brackets, and joins continued
// physical lines into single units. It is a lexical approximation of a
// C-family tokenizer, not a parser.
package scan

// maskByte replaces every masked content byte so that column positions
// survive masking.
const maskByte = 'X'

// Masker strips string/character literal contents and comment bodies from
// a line, byte-for-byte. Block-comment depth persists across lines; string
// and character state resets at end of line.
type Masker struct {
	depth int
}

// Depth returns the current block-comment nesting depth.
func (m *Masker) Depth() int {
	return m.depth
}

// Reset clears carried comment state, e.g. between files.
func (m *Masker) Reset() {
	m.depth = 0
}

// Strip returns line with literal and comment interiors replaced by mask
// bytes. Delimiters themselves ( " ' /* */ // ) are kept so structural
// rules can still see where a literal or comment starts.
func (m *Masker) Strip(line string) string {
	out := []byte(line)
	n := len(out)

	const (
		stCode = iota
		stString
		stChar
		stLineComment
	)
	state := stCode

	for i := 0; i < n; i++ {
		c := out[i]

		if m.depth > 0 {
			// Inside a block comment: only comment delimiters matter.
			switch {
			case c == '*' && i+1 < n && out[i+1] == '/':
				m.depth--
				i++ // keep "*/"
			case c == '/' && i+1 < n && out[i+1] == '*':
				m.depth++
				i++ // keep nested "/*"
			default:
				out[i] = maskByte
			}
			continue
		}

		switch state {
		case stCode:
			switch c {
			case '"':
				state = stString
			case '\'':
				state = stChar
			case '/':
				if i+1 < n {
					switch out[i+1] {
					case '/':
						state = stLineComment
						i++ // keep "//"
					case '*':
						m.depth = 1
						i++ // keep "/*"
					}
				}
			}
		case stString, stChar:
			closer := byte('"')
			if state == stChar {
				closer = '\''
			}
			switch c {
			case '\\':
				out[i] = maskByte
				if i+1 < n {
					out[i+1] = maskByte
					i++
				}
			case closer:
				state = stCode
			default:
				out[i] = maskByte
			}
		case stLineComment:
			out[i] = maskByte
		}
	}

	return string(out)
}

package tape

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes .tape file input. It works on runes so strings passed to
// Type may contain any UTF-8 text.
type Lexer struct {
	input   string
	pos     int  // byte offset of ch
	nextPos int  // byte offset after ch
	ch      rune // current character, 0 at EOF
	line    int
	column  int
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

// readChar reads the next character and updates position tracking
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	l.pos = l.nextPos
	if l.nextPos >= len(l.input) {
		l.ch = 0
		l.column++
		return
	}

	r, size := utf8.DecodeRuneInString(l.input[l.nextPos:])
	l.ch = r
	l.nextPos += size
	l.column++
}

// peekChar returns the next character without consuming it
func (l *Lexer) peekChar() rune {
	if l.nextPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.nextPos:])
	return r
}

// skipWhitespace skips spaces and tabs (not newlines)
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

// skipComment skips a comment line (from # to end of line)
func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// readString reads a quoted string (single, double, or backtick).
// Backtick strings are raw.
func (l *Lexer) readString(quote rune) string {
	var sb strings.Builder
	l.readChar() // opening quote

	for l.ch != quote && l.ch != 0 {
		if l.ch == '\\' && quote != '`' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 0:
				return sb.String()
			default:
				sb.WriteRune(l.ch)
			}
		} else {
			sb.WriteRune(l.ch)
		}
		l.readChar()
	}

	if l.ch == quote {
		l.readChar() // closing quote
	}

	return sb.String()
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isIdentifierChar(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads a number or a duration literal (500ms, 1s, 2.5s).
// It reports whether a unit followed the digits.
func (l *Lexer) readNumber() (string, bool) {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	hasUnit := false
	for unicode.IsLetter(l.ch) {
		hasUnit = true
		l.readChar()
	}
	return l.input[start:l.pos], hasUnit
}

// NextToken returns the next token in the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	tok := Token{Line: l.line, Column: l.column}

	switch {
	case l.ch == 0:
		tok.Type = TOKEN_EOF

	case l.ch == '\n':
		tok.Type = TOKEN_NEWLINE
		tok.Literal = "\n"
		l.readChar()

	case l.ch == '#':
		l.skipComment()
		return l.NextToken()

	case l.ch == '+':
		tok.Type = TOKEN_PLUS
		tok.Literal = "+"
		l.readChar()

	case l.ch == '@':
		tok.Type = TOKEN_AT
		tok.Literal = "@"
		l.readChar()

	case l.ch == '"' || l.ch == '\'' || l.ch == '`':
		tok.Type = TOKEN_STRING
		tok.Literal = l.readString(l.ch)

	case isDigit(l.ch):
		literal, hasUnit := l.readNumber()
		tok.Literal = literal
		if hasUnit {
			tok.Type = TOKEN_DURATION
		} else if strings.Contains(literal, ".") {
			tok.Type = TOKEN_ILLEGAL
		} else {
			tok.Type = TOKEN_NUMBER
		}

	case isIdentifierChar(l.ch):
		literal := l.readIdentifier()
		tok.Type = LookupKeyword(literal)
		tok.Literal = literal

	default:
		tok.Type = TOKEN_ILLEGAL
		tok.Literal = string(l.ch)
		l.readChar()
	}

	return tok
}

// isDigit returns true if ch is a digit
func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// isIdentifierChar returns true if ch is valid in an identifier
func isIdentifierChar(ch rune) bool {
	return unicode.IsLetter(ch) || isDigit(ch) || ch == '_'
}

// Tokenize returns all tokens from the input (useful for testing)
func Tokenize(input string) []Token {
	l := New(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TOKEN_EOF {
			break
		}
	}
	return tokens
}

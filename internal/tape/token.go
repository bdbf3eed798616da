package tape

// TokenType represents the type of a token in a .tape file
type TokenType string

const (
	// Special tokens
	TOKEN_EOF     TokenType = "EOF"
	TOKEN_ILLEGAL TokenType = "ILLEGAL"
	TOKEN_NEWLINE TokenType = "NEWLINE"

	// Literals
	TOKEN_STRING     TokenType = "STRING"
	TOKEN_NUMBER     TokenType = "NUMBER"
	TOKEN_DURATION   TokenType = "DURATION"
	TOKEN_IDENTIFIER TokenType = "IDENTIFIER"

	// Symbols
	TOKEN_PLUS TokenType = "PLUS"
	TOKEN_AT   TokenType = "AT"

	// Commands - Basic
	TOKEN_TYPE      TokenType = "Type"
	TOKEN_SLEEP     TokenType = "Sleep"
	TOKEN_ENTER     TokenType = "Enter"
	TOKEN_SPACE     TokenType = "Space"
	TOKEN_BACKSPACE TokenType = "Backspace"
	TOKEN_DELETE    TokenType = "Delete"
	TOKEN_TAB       TokenType = "Tab"
	TOKEN_ESCAPE    TokenType = "Escape"

	// Commands - Navigation
	TOKEN_UP        TokenType = "Up"
	TOKEN_DOWN      TokenType = "Down"
	TOKEN_LEFT      TokenType = "Left"
	TOKEN_RIGHT     TokenType = "Right"
	TOKEN_HOME      TokenType = "Home"
	TOKEN_END       TokenType = "End"
	TOKEN_PAGE_UP   TokenType = "PageUp"
	TOKEN_PAGE_DOWN TokenType = "PageDown"

	// Commands - Modifiers
	TOKEN_CTRL  TokenType = "Ctrl"
	TOKEN_ALT   TokenType = "Alt"
	TOKEN_SHIFT TokenType = "Shift"

	// Commands - Jump
	TOKEN_JUMP      TokenType = "Jump"
	TOKEN_JUMP_EXIT TokenType = "JumpExit"
	TOKEN_LABEL     TokenType = "Label"

	// Commands - Editor actions
	TOKEN_ACTION TokenType = "Action"

	// Commands - Assertions
	TOKEN_EXPECT_CURSOR TokenType = "ExpectCursor"
	TOKEN_EXPECT_MODE   TokenType = "ExpectMode"
	TOKEN_EXPECT_LINE   TokenType = "ExpectLine"
)

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// IsCommand returns true if the token type starts a command
func (tt TokenType) IsCommand() bool {
	switch tt {
	case TOKEN_TYPE, TOKEN_SLEEP, TOKEN_ENTER, TOKEN_SPACE, TOKEN_BACKSPACE,
		TOKEN_DELETE, TOKEN_TAB, TOKEN_ESCAPE,
		TOKEN_UP, TOKEN_DOWN, TOKEN_LEFT, TOKEN_RIGHT, TOKEN_HOME, TOKEN_END,
		TOKEN_PAGE_UP, TOKEN_PAGE_DOWN,
		TOKEN_CTRL, TOKEN_ALT, TOKEN_SHIFT,
		TOKEN_JUMP, TOKEN_JUMP_EXIT, TOKEN_LABEL, TOKEN_ACTION,
		TOKEN_EXPECT_CURSOR, TOKEN_EXPECT_MODE, TOKEN_EXPECT_LINE:
		return true
	}
	return false
}

// IsModifier returns true if the token is a modifier key
func (tt TokenType) IsModifier() bool {
	switch tt {
	case TOKEN_CTRL, TOKEN_ALT, TOKEN_SHIFT:
		return true
	}
	return false
}

// IsNavigationKey returns true if the token is a navigation key
func (tt TokenType) IsNavigationKey() bool {
	switch tt {
	case TOKEN_UP, TOKEN_DOWN, TOKEN_LEFT, TOKEN_RIGHT, TOKEN_HOME, TOKEN_END,
		TOKEN_PAGE_UP, TOKEN_PAGE_DOWN:
		return true
	}
	return false
}

// IsNamedKey returns true if the token names a key that can follow a
// modifier in a combination
func (tt TokenType) IsNamedKey() bool {
	switch tt {
	case TOKEN_ENTER, TOKEN_SPACE, TOKEN_BACKSPACE, TOKEN_DELETE, TOKEN_TAB, TOKEN_ESCAPE:
		return true
	}
	return tt.IsNavigationKey()
}

// KeywordTokenMap maps string keywords to token types
var KeywordTokenMap = map[string]TokenType{
	// Basic commands
	"Type":      TOKEN_TYPE,
	"Sleep":     TOKEN_SLEEP,
	"Enter":     TOKEN_ENTER,
	"Space":     TOKEN_SPACE,
	"Backspace": TOKEN_BACKSPACE,
	"Delete":    TOKEN_DELETE,
	"Tab":       TOKEN_TAB,
	"Escape":    TOKEN_ESCAPE,

	// Navigation
	"Up":       TOKEN_UP,
	"Down":     TOKEN_DOWN,
	"Left":     TOKEN_LEFT,
	"Right":    TOKEN_RIGHT,
	"Home":     TOKEN_HOME,
	"End":      TOKEN_END,
	"PageUp":   TOKEN_PAGE_UP,
	"PageDown": TOKEN_PAGE_DOWN,

	// Modifiers
	"Ctrl":  TOKEN_CTRL,
	"Alt":   TOKEN_ALT,
	"Shift": TOKEN_SHIFT,

	// Jump
	"Jump":     TOKEN_JUMP,
	"JumpExit": TOKEN_JUMP_EXIT,
	"Label":    TOKEN_LABEL,

	"Action": TOKEN_ACTION,

	// Assertions
	"ExpectCursor": TOKEN_EXPECT_CURSOR,
	"ExpectMode":   TOKEN_EXPECT_MODE,
	"ExpectLine":   TOKEN_EXPECT_LINE,
}

// LookupKeyword returns the token type for a keyword, or TOKEN_IDENTIFIER if not a keyword
func LookupKeyword(ident string) TokenType {
	if tt, ok := KeywordTokenMap[ident]; ok {
		return tt
	}
	return TOKEN_IDENTIFIER
}

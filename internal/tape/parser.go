package tape

import (
	"fmt"
	"strings"
)

// Parser parses .tape files into commands
type Parser struct {
	lexer   *Lexer
	curTok  Token
	peekTok Token
	errors  []string
}

// NewParser creates a new parser from a lexer
func NewParser(l *Lexer) *Parser {
	p := &Parser{
		lexer:  l,
		errors: []string{},
	}
	p.nextToken()
	p.nextToken()
	return p
}

// nextToken advances to the next token
func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.lexer.NextToken()
}

// Parse parses the entire tape file and returns all commands
func (p *Parser) Parse() []Command {
	var commands []Command

	for p.curTok.Type != TOKEN_EOF {
		if p.curTok.Type == TOKEN_NEWLINE {
			p.nextToken()
			continue
		}

		cmd, ok := p.parseCommand()
		if !ok {
			p.skipToNextLine()
			continue
		}

		commands = append(commands, cmd)
		p.endOfCommand()
	}

	return commands
}

// parseCommand parses a single command
func (p *Parser) parseCommand() (Command, bool) {
	tt := p.curTok.Type

	switch {
	case tt == TOKEN_TYPE:
		return p.parseTypeCommand()
	case tt == TOKEN_SLEEP:
		return p.parseSleepCommand()
	case tt.IsNamedKey():
		return p.parseKeyCommand(CommandType(tt))
	case tt.IsModifier():
		return p.parseKeyComboCommand()
	case tt == TOKEN_JUMP:
		return p.parseBareCommand(CommandType_Jump)
	case tt == TOKEN_JUMP_EXIT:
		return p.parseBareCommand(CommandType_JumpExit)
	case tt == TOKEN_LABEL:
		return p.parseLabelCommand()
	case tt == TOKEN_ACTION:
		return p.parseActionCommand()
	case tt == TOKEN_EXPECT_CURSOR:
		return p.parseExpectCursorCommand()
	case tt == TOKEN_EXPECT_MODE:
		return p.parseExpectModeCommand()
	case tt == TOKEN_EXPECT_LINE:
		return p.parseExpectLineCommand()
	default:
		p.addError(fmt.Sprintf("unexpected token: %v %q", tt, p.curTok.Literal))
		return Command{}, false
	}
}

// newCommand starts a command at the current token and consumes it
func (p *Parser) newCommand(cmdType CommandType) Command {
	cmd := Command{
		Type:   cmdType,
		Line:   p.curTok.Line,
		Column: p.curTok.Column,
	}
	p.nextToken()
	return cmd
}

// parseDelay consumes an optional @<duration> modifier
func (p *Parser) parseDelay(cmd *Command) bool {
	if p.curTok.Type != TOKEN_AT {
		return true
	}
	p.nextToken()
	if p.curTok.Type != TOKEN_DURATION {
		p.addError("expected duration after @")
		return false
	}
	duration, err := ParseDuration(p.curTok.Literal)
	if err != nil {
		p.addError(fmt.Sprintf("invalid duration: %s", p.curTok.Literal))
		return false
	}
	cmd.Delay = duration
	p.nextToken()
	return true
}

// parseBareCommand parses commands that take no arguments
func (p *Parser) parseBareCommand(cmdType CommandType) (Command, bool) {
	cmd := p.newCommand(cmdType)
	cmd.Raw = string(cmdType)
	return cmd, true
}

// parseKeyCommand parses simple key commands with optional delay and
// repeat count: Down@100ms 3
func (p *Parser) parseKeyCommand(cmdType CommandType) (Command, bool) {
	cmd := p.newCommand(cmdType)
	if !p.parseDelay(&cmd) {
		return cmd, false
	}

	cmd.Raw = string(cmdType)
	if p.curTok.Type == TOKEN_NUMBER {
		cmd.Args = append(cmd.Args, p.curTok.Literal)
		cmd.Raw += " " + p.curTok.Literal
		p.nextToken()
	}

	return cmd, true
}

// parseTypeCommand parses Type "text" commands
func (p *Parser) parseTypeCommand() (Command, bool) {
	cmd := p.newCommand(CommandType_Type)
	if !p.parseDelay(&cmd) {
		return cmd, false
	}

	if p.curTok.Type != TOKEN_STRING {
		p.addError(fmt.Sprintf("Type command expects a string, got %v", p.curTok.Type))
		return cmd, false
	}
	cmd.Args = []string{p.curTok.Literal}
	cmd.Raw = fmt.Sprintf("Type %q", p.curTok.Literal)
	p.nextToken()

	return cmd, true
}

// parseSleepCommand parses Sleep <duration> commands
func (p *Parser) parseSleepCommand() (Command, bool) {
	cmd := p.newCommand(CommandType_Sleep)

	if p.curTok.Type != TOKEN_DURATION {
		p.addError(fmt.Sprintf("Sleep command expects a duration, got %v", p.curTok.Type))
		return cmd, false
	}
	duration, err := ParseDuration(p.curTok.Literal)
	if err != nil {
		p.addError(fmt.Sprintf("invalid duration: %s", p.curTok.Literal))
		return cmd, false
	}
	cmd.Args = []string{p.curTok.Literal}
	cmd.Delay = duration
	cmd.Raw = "Sleep " + p.curTok.Literal
	p.nextToken()

	return cmd, true
}

// parseKeyComboCommand parses Ctrl+G, Alt+J, Ctrl+Home, etc.
func (p *Parser) parseKeyComboCommand() (Command, bool) {
	cmd := Command{
		Type:   CommandType_KeyCombo,
		Line:   p.curTok.Line,
		Column: p.curTok.Column,
	}

	var comboParts []string
	for p.curTok.Type.IsModifier() {
		comboParts = append(comboParts, p.curTok.Literal)
		p.nextToken()
		if p.curTok.Type != TOKEN_PLUS {
			p.addError(fmt.Sprintf("expected + after %s", comboParts[len(comboParts)-1]))
			return cmd, false
		}
		p.nextToken()
	}

	switch {
	case p.curTok.Type == TOKEN_IDENTIFIER, p.curTok.Type == TOKEN_NUMBER,
		p.curTok.Type.IsNamedKey():
		comboParts = append(comboParts, p.curTok.Literal)
		p.nextToken()
	default:
		p.addError(fmt.Sprintf("expected key after modifier, got %v", p.curTok.Type))
		return cmd, false
	}

	combo := strings.Join(comboParts, "+")
	cmd.Args = []string{combo}
	cmd.Raw = combo

	return cmd, true
}

// parseLabelCommand parses Label "ab" or Label ab
func (p *Parser) parseLabelCommand() (Command, bool) {
	cmd := p.newCommand(CommandType_Label)

	if p.curTok.Type != TOKEN_STRING && p.curTok.Type != TOKEN_IDENTIFIER {
		p.addError(fmt.Sprintf("Label expects a label, got %v", p.curTok.Type))
		return cmd, false
	}
	if p.curTok.Literal == "" {
		p.addError("Label expects a non-empty label")
		return cmd, false
	}
	cmd.Args = []string{p.curTok.Literal}
	cmd.Raw = "Label " + p.curTok.Literal
	p.nextToken()

	return cmd, true
}

// parseActionCommand parses Action <name>
func (p *Parser) parseActionCommand() (Command, bool) {
	cmd := p.newCommand(CommandType_Action)

	if p.curTok.Type != TOKEN_IDENTIFIER {
		p.addError(fmt.Sprintf("Action expects an action name, got %v", p.curTok.Type))
		return cmd, false
	}
	cmd.Args = []string{p.curTok.Literal}
	cmd.Raw = "Action " + p.curTok.Literal
	p.nextToken()

	return cmd, true
}

// parseExpectCursorCommand parses ExpectCursor <line> <column>, both
// zero-based
func (p *Parser) parseExpectCursorCommand() (Command, bool) {
	cmd := p.newCommand(CommandType_ExpectCursor)

	for range 2 {
		if p.curTok.Type != TOKEN_NUMBER {
			p.addError(fmt.Sprintf("ExpectCursor expects a line and a column, got %v", p.curTok.Type))
			return cmd, false
		}
		cmd.Args = append(cmd.Args, p.curTok.Literal)
		p.nextToken()
	}
	cmd.Raw = fmt.Sprintf("ExpectCursor %s %s", cmd.Args[0], cmd.Args[1])

	return cmd, true
}

// parseExpectModeCommand parses ExpectMode jump|edit
func (p *Parser) parseExpectModeCommand() (Command, bool) {
	cmd := p.newCommand(CommandType_ExpectMode)

	if p.curTok.Type != TOKEN_IDENTIFIER && p.curTok.Type != TOKEN_JUMP {
		p.addError(fmt.Sprintf("ExpectMode expects jump or edit, got %v", p.curTok.Type))
		return cmd, false
	}
	mode := strings.ToLower(p.curTok.Literal)
	if mode != "jump" && mode != "edit" {
		p.addError(fmt.Sprintf("ExpectMode expects jump or edit, got %q", p.curTok.Literal))
		return cmd, false
	}
	cmd.Args = []string{mode}
	cmd.Raw = "ExpectMode " + mode
	p.nextToken()

	return cmd, true
}

// parseExpectLineCommand parses ExpectLine <line> "text"
func (p *Parser) parseExpectLineCommand() (Command, bool) {
	cmd := p.newCommand(CommandType_ExpectLine)

	if p.curTok.Type != TOKEN_NUMBER {
		p.addError(fmt.Sprintf("ExpectLine expects a line number, got %v", p.curTok.Type))
		return cmd, false
	}
	cmd.Args = []string{p.curTok.Literal}
	p.nextToken()

	if p.curTok.Type != TOKEN_STRING {
		p.addError(fmt.Sprintf("ExpectLine expects a string, got %v", p.curTok.Type))
		return cmd, false
	}
	cmd.Args = append(cmd.Args, p.curTok.Literal)
	cmd.Raw = fmt.Sprintf("ExpectLine %s %q", cmd.Args[0], cmd.Args[1])
	p.nextToken()

	return cmd, true
}

// endOfCommand reports trailing tokens after a complete command
func (p *Parser) endOfCommand() {
	if p.curTok.Type != TOKEN_NEWLINE && p.curTok.Type != TOKEN_EOF {
		p.addError(fmt.Sprintf("unexpected %v %q after command", p.curTok.Type, p.curTok.Literal))
		p.skipToNextLine()
	}
}

// skipToNextLine skips tokens until the next newline
func (p *Parser) skipToNextLine() {
	for p.curTok.Type != TOKEN_NEWLINE && p.curTok.Type != TOKEN_EOF {
		p.nextToken()
	}
}

// addError adds an error to the parser's error list
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, fmt.Sprintf("line %d: %s", p.curTok.Line, msg))
}

// Errors returns the list of parser errors
func (p *Parser) Errors() []string {
	return p.errors
}

// ParseFile parses a tape file from a string
func ParseFile(content string) ([]Command, []string) {
	l := New(content)
	p := NewParser(l)
	commands := p.Parse()
	return commands, p.Errors()
}

// ValidateScript checks if a tape script is valid (parses without errors)
func ValidateScript(content string) (bool, []string) {
	commands, errors := ParseFile(content)
	if len(errors) > 0 {
		return false, errors
	}
	if len(commands) == 0 {
		return false, []string{"no commands found in script"}
	}
	return true, nil
}

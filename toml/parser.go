package toml

import (
	"fmt"
	"strconv"
)

// Parser builds a map[string]any document from the token stream.
// Table headers move a scope cursor; key-value pairs populate the
// current scope.
type Parser struct {
	lexer     *Lexer
	curToken  Token
	peekToken Token
	root      map[string]any
	current   any
}

func NewParser(input []byte) *Parser {
	p := &Parser{
		lexer: NewLexer(input),
		root:  make(map[string]any),
	}
	p.nextToken()
	p.nextToken()
	p.current = p.root
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextToken()

	for p.peekToken.Type == TokenComment {
		p.peekToken = p.lexer.NextToken()
	}
}

func (p *Parser) Parse() (map[string]any, error) {
	for p.curToken.Type != TokenEOF {
		if p.curToken.Type == TokenNewline {
			p.nextToken()
			continue
		}
		if err := p.parseStatement(); err != nil {
			return nil, err
		}
	}
	return p.root, nil
}

func (p *Parser) parseStatement() error {
	switch p.curToken.Type {
	case TokenLBracket:
		return p.parseTableHeader()
	case TokenIdent, TokenString:
		return p.parseKeyValuePair(p.current)
	case TokenError:
		return fmt.Errorf("line %d: %s", p.curToken.Line, p.curToken.Literal)
	default:
		return fmt.Errorf("line %d: unexpected token %s", p.curToken.Line, p.curToken.String())
	}
}

// parseTableHeader handles [table] and [[array.of.tables]].
func (p *Parser) parseTableHeader() error {
	isArray := false
	if p.peekToken.Type == TokenLBracket {
		p.nextToken()
		isArray = true
	}
	p.nextToken()

	keys, err := p.parseKeyParts()
	if err != nil {
		return err
	}

	if isArray {
		if p.curToken.Type != TokenRBracket {
			return fmt.Errorf("line %d: expected ]] after array table name", p.curToken.Line)
		}
		p.nextToken()
	}
	if p.curToken.Type != TokenRBracket {
		return fmt.Errorf("line %d: expected ] after table name", p.curToken.Line)
	}
	p.nextToken()

	return p.setTableScope(keys, isArray)
}

// setTableScope navigates the key path from the root, creating
// intermediate tables, and leaves the cursor on the named table. An
// intermediate key naming an array of tables traverses into its last
// element, which is what lets [[a.b]] appear under a preceding [[a]].
func (p *Parser) setTableScope(keys []string, isArrayOfTables bool) error {
	var ptr any = p.root

	for i, key := range keys {
		isLast := i == len(keys)-1
		currentMap, ok := ptr.(map[string]any)
		if !ok {
			return fmt.Errorf("key path conflict: %s is not a table", key)
		}

		if !isLast {
			val, exists := currentMap[key]
			if !exists {
				next := make(map[string]any)
				currentMap[key] = next
				ptr = next
				continue
			}
			switch v := val.(type) {
			case map[string]any:
				ptr = v
			case []map[string]any:
				if len(v) == 0 {
					return fmt.Errorf("cannot traverse empty array table %s", key)
				}
				ptr = v[len(v)-1]
			default:
				return fmt.Errorf("intermediate key %s is not a table", key)
			}
			continue
		}

		if isArrayOfTables {
			var slice []map[string]any
			if val, exists := currentMap[key]; exists {
				s, ok := val.([]map[string]any)
				if !ok {
					return fmt.Errorf("key conflict: %s is not an array of tables", key)
				}
				slice = s
			}
			entry := make(map[string]any)
			currentMap[key] = append(slice, entry)
			p.current = entry
		} else {
			var table map[string]any
			if val, exists := currentMap[key]; exists {
				m, ok := val.(map[string]any)
				if !ok {
					return fmt.Errorf("key conflict: %s is not a table", key)
				}
				table = m
			} else {
				table = make(map[string]any)
				currentMap[key] = table
			}
			p.current = table
		}
	}
	return nil
}

func (p *Parser) parseKeyValuePair(scope any) error {
	keys, err := p.parseKeyParts()
	if err != nil {
		return err
	}

	if p.curToken.Type != TokenEqual {
		return fmt.Errorf("line %d: expected '=' after key, got %s", p.curToken.Line, p.curToken.String())
	}
	p.nextToken()

	val, err := p.parseValue()
	if err != nil {
		return err
	}

	return p.assignValue(scope, keys, val)
}

func (p *Parser) assignValue(scope any, keys []string, val any) error {
	currentMap, ok := scope.(map[string]any)
	if !ok {
		return fmt.Errorf("assignment scope is not a table")
	}

	for i, key := range keys {
		if i == len(keys)-1 {
			if _, exists := currentMap[key]; exists {
				return fmt.Errorf("line %d: duplicate key %s", p.curToken.Line, key)
			}
			currentMap[key] = val
			continue
		}
		if existing, exists := currentMap[key]; exists {
			m, ok := existing.(map[string]any)
			if !ok {
				return fmt.Errorf("intermediate key %s is not a table", key)
			}
			currentMap = m
		} else {
			next := make(map[string]any)
			currentMap[key] = next
			currentMap = next
		}
	}
	return nil
}

func (p *Parser) parseKeyParts() ([]string, error) {
	var keys []string
	for {
		if p.curToken.Type != TokenIdent && p.curToken.Type != TokenString {
			return nil, fmt.Errorf("line %d: expected key, got %s", p.curToken.Line, p.curToken.String())
		}
		keys = append(keys, p.curToken.Literal)
		p.nextToken()

		if p.curToken.Type != TokenDot {
			break
		}
		p.nextToken()
	}
	return keys, nil
}

func (p *Parser) parseValue() (any, error) {
	switch p.curToken.Type {
	case TokenString:
		val := p.curToken.Literal
		p.nextToken()
		return val, nil
	case TokenInteger:
		val, err := strconv.ParseInt(p.curToken.Literal, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad integer %q", p.curToken.Line, p.curToken.Literal)
		}
		p.nextToken()
		return int(val), nil
	case TokenFloat:
		val, err := strconv.ParseFloat(p.curToken.Literal, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad float %q", p.curToken.Line, p.curToken.Literal)
		}
		p.nextToken()
		return val, nil
	case TokenBool:
		val := p.curToken.Literal == "true"
		p.nextToken()
		return val, nil
	case TokenLBracket:
		return p.parseArray()
	case TokenLBrace:
		return p.parseInlineTable()
	}
	return nil, fmt.Errorf("line %d: unexpected value token %s", p.curToken.Line, p.curToken.String())
}

func (p *Parser) parseArray() ([]any, error) {
	p.nextToken() // consume [
	arr := make([]any, 0)

	for p.curToken.Type != TokenRBracket {
		if p.curToken.Type == TokenNewline {
			p.nextToken()
			continue
		}
		if p.curToken.Type == TokenEOF {
			return nil, fmt.Errorf("unterminated array")
		}

		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)

		switch p.curToken.Type {
		case TokenComma:
			p.nextToken()
		case TokenNewline:
			p.nextToken()
		case TokenRBracket:
		case TokenEOF:
			return nil, fmt.Errorf("unterminated array")
		default:
			return nil, fmt.Errorf("line %d: expected ',' or ']' in array", p.curToken.Line)
		}
	}
	p.nextToken() // consume ]
	return arr, nil
}

func (p *Parser) parseInlineTable() (map[string]any, error) {
	p.nextToken() // consume {
	m := make(map[string]any)

	for p.curToken.Type != TokenRBrace {
		if p.curToken.Type == TokenEOF {
			return nil, fmt.Errorf("unterminated inline table")
		}

		keys, err := p.parseKeyParts()
		if err != nil {
			return nil, err
		}
		if p.curToken.Type != TokenEqual {
			return nil, fmt.Errorf("line %d: expected '=' in inline table", p.curToken.Line)
		}
		p.nextToken()

		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if err := p.assignValue(m, keys, val); err != nil {
			return nil, err
		}

		switch p.curToken.Type {
		case TokenComma:
			p.nextToken()
		case TokenRBrace:
		case TokenEOF:
			return nil, fmt.Errorf("unterminated inline table")
		default:
			return nil, fmt.Errorf("line %d: expected ',' or '}' in inline table", p.curToken.Line)
		}
	}
	p.nextToken() // consume }
	return m, nil
}

package parser

import "fmt"

// Parser builds tagged value trees from a token stream. The tokenizer is
// shared with the caller: the catalog loader reads the entry header tokens
// itself and hands the tokenizer to ReadValue for the entry body.
type Parser struct {
	tok *Tokenizer
}

// NewParser returns a Parser reading values from tok.
func NewParser(tok *Tokenizer) *Parser {
	return &Parser{tok: tok}
}

// ReadValue parses one complete value rooted at the current token position:
// a scalar, an array, or an associative map.
func (p *Parser) ReadValue() (*Value, error) {
	switch p.tok.NextToken() {
	case TokenNumber:
		return &Value{kind: NumberValue, num: p.tok.Number()}, nil
	case TokenString:
		return &Value{kind: StringValue, str: p.tok.Text()}, nil
	case TokenName:
		switch p.tok.Name() {
		case "true":
			return &Value{kind: BoolValue, b: true}, nil
		case "false":
			return &Value{kind: BoolValue, b: false}, nil
		default:
			return nil, fmt.Errorf("parser: line %d: unexpected name %q in value", p.tok.Line(), p.tok.Name())
		}
	case TokenBeginArray:
		return p.readArray()
	case TokenBeginGroup:
		return p.readMap()
	case TokenEnd:
		if err := p.tok.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("parser: line %d: unexpected end of input", p.tok.Line())
	default:
		return nil, fmt.Errorf("parser: line %d: unexpected token in value", p.tok.Line())
	}
}

func (p *Parser) readArray() (*Value, error) {
	var elems []*Value
	for {
		kind := p.tok.NextToken()
		if kind == TokenEndArray {
			return &Value{kind: ArrayValue, arr: elems}, nil
		}
		if kind == TokenEnd {
			if err := p.tok.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("parser: line %d: unterminated array", p.tok.Line())
		}
		p.tok.PushBack()
		elem, err := p.ReadValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
}

func (p *Parser) readMap() (*Value, error) {
	m := NewMap()
	for {
		switch p.tok.NextToken() {
		case TokenEndGroup:
			return &Value{kind: MapValue, m: m}, nil
		case TokenName:
			name := p.tok.Name()
			v, err := p.ReadValue()
			if err != nil {
				return nil, err
			}
			m.Set(name, v)
		case TokenEnd:
			if err := p.tok.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("parser: line %d: unterminated property group", p.tok.Line())
		default:
			return nil, fmt.Errorf("parser: line %d: field name expected", p.tok.Line())
		}
	}
}

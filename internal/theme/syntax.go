package theme

import (
	"fmt"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Token names a syntax-highlighting role fed from a palette position.
type Token string

// Palette-indexed token roles. The order matches the engine's output.
const (
	TokenBase      Token = "base"
	TokenLink      Token = "link"
	TokenKeyword   Token = "keyword"
	TokenString    Token = "string"
	TokenType      Token = "type"
	TokenTag       Token = "tag"
	TokenFunction  Token = "function"
	TokenNumber    Token = "number"
	TokenProperty  Token = "property"
	TokenOperator  Token = "operator"
	TokenConstant  Token = "constant"
	TokenAttribute Token = "attribute"
	TokenVariable  Token = "variable"
	TokenBuiltin   Token = "builtin"
	TokenRegex     Token = "regex"
)

// Tokens lists the positional roles; Tokens[i] is coloured by palette entry i.
var Tokens = []Token{
	TokenBase, TokenLink, TokenKeyword, TokenString, TokenType,
	TokenTag, TokenFunction, TokenNumber, TokenProperty, TokenOperator,
	TokenConstant, TokenAttribute, TokenVariable, TokenBuiltin, TokenRegex,
}

// Translucent editor chrome derived from the base and link tones.
const (
	alphaComment   = 0.5
	alphaGutter    = 0.3
	alphaSelection = 0.2
	alphaCaption   = 0.6
)

// Syntax is an editor colour scheme built from a palette.
type Syntax struct {
	Tokens map[Token]colour.HSL

	Comment   colour.HSLA
	Gutter    colour.HSLA
	Selection colour.HSLA
	Caption   colour.HSLA

	// Gradient holds the seed colours for the background.
	Gradient [2]colour.RGB
}

// NewSyntax maps a palette onto token roles. The palette must hold at
// least one colour per token.
func NewSyntax(p *colour.Palette) (*Syntax, error) {
	if p.Len() < len(Tokens) {
		return nil, fmt.Errorf("palette has %d colours, syntax theme needs %d", p.Len(), len(Tokens))
	}

	s := &Syntax{
		Tokens:   make(map[Token]colour.HSL, len(Tokens)),
		Gradient: p.Seeds,
	}
	for i, tok := range Tokens {
		s.Tokens[tok] = p.Colours[i]
	}

	var err error
	base := s.Tokens[TokenBase]
	if s.Comment, err = translucent(base, alphaComment); err != nil {
		return nil, err
	}
	if s.Gutter, err = translucent(base, alphaGutter); err != nil {
		return nil, err
	}
	if s.Caption, err = translucent(base, alphaCaption); err != nil {
		return nil, err
	}
	if s.Selection, err = translucent(s.Tokens[TokenLink], alphaSelection); err != nil {
		return nil, err
	}

	return s, nil
}

// Colour returns the tone for a token.
func (s *Syntax) Colour(tok Token) (colour.HSL, bool) {
	c, ok := s.Tokens[tok]
	return c, ok
}

func translucent(c colour.HSL, alpha float64) (colour.HSLA, error) {
	str, err := colour.HSLToHSLA(c.String(), alpha)
	if err != nil {
		return colour.HSLA{}, err
	}
	return colour.ParseHSLA(str)
}

// Package render turns a derived palette into output other tools consume:
// chroma syntax styles, highlighted snippets and CSS custom properties.
package render

import (
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/theme"
)

// backdropAlpha is how much of the contrast reference is laid over the
// seed gradient to form the snippet background.
const backdropAlpha = 0.7

// tokenTypes maps each palette role onto the chroma token types it colours.
var tokenTypes = map[theme.Token][]chroma.TokenType{
	theme.TokenBase:      {chroma.Text, chroma.Punctuation, chroma.Name, chroma.NameOther},
	theme.TokenLink:      {chroma.NameNamespace, chroma.GenericUnderline},
	theme.TokenKeyword:   {chroma.Keyword, chroma.KeywordDeclaration, chroma.KeywordNamespace, chroma.KeywordReserved},
	theme.TokenString:    {chroma.LiteralString, chroma.LiteralStringChar},
	theme.TokenType:      {chroma.KeywordType, chroma.NameClass},
	theme.TokenTag:       {chroma.NameTag},
	theme.TokenFunction:  {chroma.NameFunction},
	theme.TokenNumber:    {chroma.LiteralNumber},
	theme.TokenProperty:  {chroma.NameProperty},
	theme.TokenOperator:  {chroma.Operator, chroma.OperatorWord},
	theme.TokenConstant:  {chroma.KeywordConstant, chroma.NameConstant},
	theme.TokenAttribute: {chroma.NameAttribute, chroma.NameDecorator},
	theme.TokenVariable:  {chroma.NameVariable},
	theme.TokenBuiltin:   {chroma.NameBuiltin},
	theme.TokenRegex:     {chroma.LiteralStringRegex, chroma.LiteralStringEscape},
}

// Backdrop returns the solid snippet background: the reference colour
// laid over the midpoint of the seed gradient.
func Backdrop(s *theme.Syntax, ref colour.RGB) colour.RGB {
	mid := toColorful(s.Gradient[0]).BlendRgb(toColorful(s.Gradient[1]), 0.5)
	return fromColorful(mid.BlendRgb(toColorful(ref), backdropAlpha))
}

// Style builds a chroma style named name from a syntax scheme. Chroma has
// no alpha channel, so translucent chrome is flattened onto the backdrop.
func Style(name string, s *theme.Syntax, ref colour.RGB) (*chroma.Style, error) {
	bg := Backdrop(s, ref)
	base := s.Tokens[theme.TokenBase]

	entries := chroma.StyleEntries{
		chroma.Background:    fmt.Sprintf("%s bg:%s", base.Hex(), bg.Hex()),
		chroma.Comment:       "italic " + flatten(s.Comment, bg),
		chroma.LineNumbers:   flatten(s.Gutter, bg),
		chroma.LineHighlight: "bg:" + flatten(s.Selection, bg),
		chroma.GenericEmph:   "italic",
		chroma.GenericStrong: "bold",
	}
	for tok, types := range tokenTypes {
		c, ok := s.Colour(tok)
		if !ok {
			return nil, fmt.Errorf("syntax scheme has no %s colour", tok)
		}
		for _, tt := range types {
			entries[tt] = c.Hex()
		}
	}

	style, err := chroma.NewStyle(name, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to build chroma style: %w", err)
	}
	return style, nil
}

func flatten(c colour.HSLA, over colour.RGB) string {
	return fromColorful(toColorful(over).BlendRgb(toColorful(c.RGB()), c.A)).Hex()
}

func toColorful(c colour.RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) colour.RGB {
	r, g, b := c.Clamped().RGB255()
	return colour.RGB{R: r, G: g, B: b}
}

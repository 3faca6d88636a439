// Package dsl parses scene files: document metadata, reusable resources and
// one canvas holding the text boxes to draw.
package dsl

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var sceneParser = participle.MustBuild[Document](
	participle.Lexer(sceneLexer),
	participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
)

// Document is the root of a scene file.
type Document struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"Newline* 'doc' @Ident"`
	Version  string         `parser:"@Ident"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section is one of meta, resources or canvas.
type Section struct {
	Meta      *MetaSection      `parser:"  @@"`
	Resources *ResourcesSection `parser:"| @@"`
	Canvas    *CanvasSection    `parser:"| @@"`
}

// Kind names the section type.
func (s *Section) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Meta != nil:
		return "meta"
	case s.Resources != nil:
		return "resources"
	case s.Canvas != nil:
		return "canvas"
	}
	return "unknown"
}

type MetaSection struct {
	Block *Block `parser:"'meta' @@"`
}

// ResourcesSection declares fonts, colors and styles.
type ResourcesSection struct {
	Block *Block `parser:"'resources' @@"`
}

// CanvasSection is the drawing surface and the boxes drawn on it, in order.
type CanvasSection struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Width      string         `parser:"'canvas' @Number"`
	Height     string         `parser:"@Number"`
	Background string         `parser:"( @Color | @Ident )?"`
	Boxes      []*BoxSection  `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// BoxSection is a text box: a name, an optional style and key/value
// arguments (x, y, width, height, ...), then a block with properties and text.
type BoxSection struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"'box' @Ident"`
	Args  []*Lexeme      `parser:"@@*"`
	Block *Block         `parser:"( Newline* @@ )?"`
}

type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement is an assignment (key: value), a command (name args { ... }) or
// a text literal.
type Statement struct {
	Assignment *Assignment  `parser:"  @@"`
	Command    *Command     `parser:"| @@"`
	Text       *TextLiteral `parser:"| @@"`
}

type Assignment struct {
	Key   string `parser:"@Ident"`
	Value *Value `parser:"':' Newline* @@"`
}

// Command is a resource declaration such as "font Mono { ... }" or
// "color Accent = #0F62FE".
type Command struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"@Ident"`
	Args  []*Lexeme      `parser:"@@*"`
	Block *Block         `parser:"( Newline* @@ )?"`
}

type TextLiteral struct {
	Value StringLiteral `parser:"@String"`
}

// Value is the right-hand side of an assignment.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Array  *ArrayValue    `parser:"| @@"`
	Expr   *Expression    `parser:"| @@"`
}

// ArrayValue is a bracketed list; items are separated by commas, semicolons
// or new lines.
type ArrayValue struct {
	Values []*Value `parser:"'[' Newline* ( @@ ( (',' | ';' | Newline+) Newline* @@ )* )? Newline* ']'"`
}

// Parse reads a scene from r.
func Parse(r io.Reader) (*Document, error) {
	return sceneParser.Parse("", r)
}

// ParseString reads a scene from a string.
func ParseString(input string) (*Document, error) {
	return sceneParser.ParseString("", input)
}

// ParseFile reads the scene file at path. Errors carry the file name.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene %s: %w", path, err)
	}
	defer f.Close()
	return sceneParser.Parse(path, f)
}

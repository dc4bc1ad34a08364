// Package script parses and replays measurement scripts: small
// line-oriented files that drive a headless session through the same
// pointer and key events an interactive viewer would produce. Scripts
// back the replay and export commands and double as regression cases.
package script

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.\d+|\d+)`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
	})

	scriptParser = participle.MustBuild[Script](
		participle.Lexer(scriptLexer),
		participle.Elide("Whitespace", "Comment"),
	)
)

// Script is the root AST node for a replay script
type Script struct {
	Statements []*Statement `parser:"Newline* ( @@ Newline* )*"`
}

// Statement is a single script line
type Statement struct {
	Pos       lexer.Position `parser:""`
	Model     *ModelStmt     `parser:"  @@"`
	Plane     *PlaneStmt     `parser:"| @@"`
	Camera    *CameraStmt    `parser:"| @@"`
	Open      *OpenStmt      `parser:"| @@"`
	Move      *MoveStmt      `parser:"| @@"`
	Click     *ClickStmt     `parser:"| @@"`
	Secondary *SecondaryStmt `parser:"| @@"`
	Press     *PressStmt     `parser:"| @@"`
}

// ModelStmt loads an STL file into the scene
type ModelStmt struct {
	Path StringLiteral `parser:"'model' @String"`
}

// PlaneStmt adds a horizontal ground plane at the given height
type PlaneStmt struct {
	Height float64 `parser:"'plane' @Number"`
}

// CameraStmt orients the camera: orbit angles in radians plus a
// distance factor applied to the framing distance
type CameraStmt struct {
	AngleX         float64 `parser:"'camera' @Number"`
	AngleY         float64 `parser:"@Number"`
	DistanceFactor float64 `parser:"@Number"`
}

// OpenStmt opens a measurement session in the given mode
type OpenStmt struct {
	Mode string `parser:"'open' @('distance' | 'area' | 'angle')"`
}

// MoveStmt moves the pointer to element-relative offsets
type MoveStmt struct {
	X float64 `parser:"'move' @Number"`
	Y float64 `parser:"@Number"`
}

// ClickStmt performs a primary click at element-relative offsets
type ClickStmt struct {
	X float64 `parser:"'click' @Number"`
	Y float64 `parser:"@Number"`
}

// SecondaryStmt performs a secondary click (completes the measurement)
type SecondaryStmt struct {
	Keyword bool `parser:"@'secondary'"`
}

// PressStmt presses a key
type PressStmt struct {
	Key string `parser:"'press' @('enter' | 'escape')"`
}

// StringLiteral unquotes Go-style strings on capture
type StringLiteral string

// Capture implements participle.Capture
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses script content from an io.Reader
func Parse(r io.Reader) (*Script, error) {
	return scriptParser.Parse("", r)
}

// ParseString parses script content from a string
func ParseString(input string) (*Script, error) {
	return scriptParser.ParseString("", input)
}

// ParseFile parses a script file
func ParseFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return scriptParser.ParseString(path, string(data))
}

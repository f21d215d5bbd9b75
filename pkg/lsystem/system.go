// Package lsystem rewrites Lindenmayer systems and interprets the result with
// a 2D or 3D turtle, producing line segments.
package lsystem

import (
	"fmt"
	"strings"

	"github.com/chazu/morpho/pkg/geom"
)

// Caps on rewriting. Generation fails before exceeding either.
const (
	MaxIterations = 12
	MaxSymbols    = 4_000_000
)

// DefaultDraw lists the symbols that draw when a System leaves Draw empty.
const DefaultDraw = "FG"

// System is an L-system: an axiom, one production per symbol and a turning
// angle in degrees. Symbols without a production are copied unchanged.
type System struct {
	Axiom string
	Rules map[rune]string
	Angle float64
	Draw  string
}

// New builds a custom system from an axiom and a rule list in the form
// "F=FF+F,X=FX".
func New(axiom, rules string, angle float64) (*System, error) {
	if axiom == "" {
		return nil, geom.Invalid("axiom", axiom, "must not be empty")
	}
	parsed, err := ParseRules(rules)
	if err != nil {
		return nil, err
	}
	return &System{Axiom: axiom, Rules: parsed, Angle: angle}, nil
}

// ParseRules parses comma-separated "S=replacement" productions. Whitespace
// around each part is ignored and the left side must be a single symbol.
func ParseRules(s string) (map[rune]string, error) {
	rules := make(map[rune]string)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lhs, rhs, ok := strings.Cut(part, "=")
		if !ok {
			return nil, geom.Invalid("rules", part, "expected symbol=replacement")
		}
		lhs = strings.TrimSpace(lhs)
		sym := []rune(lhs)
		if len(sym) != 1 {
			return nil, geom.Invalid("rules", lhs, "left side must be a single symbol")
		}
		rules[sym[0]] = strings.TrimSpace(rhs)
	}
	if len(rules) == 0 {
		return nil, geom.Invalid("rules", s, "no productions")
	}
	return rules, nil
}

// Generate applies the productions n times to the axiom.
func (s *System) Generate(n int) (string, error) {
	if err := geom.CheckRange("iterations", n, 0, MaxIterations); err != nil {
		return "", err
	}
	current := s.Axiom
	for i := 0; i < n; i++ {
		var b strings.Builder
		for _, r := range current {
			if rep, ok := s.Rules[r]; ok {
				b.WriteString(rep)
			} else {
				b.WriteRune(r)
			}
			if b.Len() > MaxSymbols {
				return "", geom.Invalid("iterations", n,
					fmt.Sprintf("expansion exceeds %d symbols at iteration %d", MaxSymbols, i+1))
			}
		}
		current = b.String()
	}
	return current, nil
}

func (s *System) draws(r rune) bool {
	draw := s.Draw
	if draw == "" {
		draw = DefaultDraw
	}
	return strings.ContainsRune(draw, r)
}

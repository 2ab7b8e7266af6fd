// Package customid interprets an inventory's ID-format description: an
// ordered list of typed elements whose generated substrings are
// concatenated into the item's human-readable identifier.
//
// Generation does not guarantee uniqueness. The sequence element computes
// count+1 over the inventory's current items, so two concurrent creations
// can draw the same value and a deleted item's number can be reissued; the
// composite unique index on (inventory_id, custom_id) is the backstop and
// the caller surfaces the conflict instead of retrying.
package customid

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
)

type ElementType string

const (
	FixedText ElementType = "FixedText"
	Random    ElementType = "Random"
	Sequence  ElementType = "Sequence"
	DateTime  ElementType = "DateTime"
	Guid      ElementType = "Guid"
)

// Element is one unit of the format description. Value is used by
// FixedText; Format is interpreted per type ("D6", "X8", a date pattern).
type Element struct {
	Type   ElementType `json:"type"`
	Value  string      `json:"value,omitempty"`
	Format string      `json:"format,omitempty"`
}

type Format struct {
	Elements []Element `json:"elements"`
}

// DefaultFormat is assigned to inventories created without an explicit
// format description.
func DefaultFormat() Format {
	return Format{Elements: []Element{
		{Type: FixedText, Value: "INV-"},
		{Type: Sequence},
	}}
}

// ConfigError marks a malformed or self-contradictory format description.
// It indicates corrupted configuration, not bad user input, and the
// operation that hit it is not retried.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "custom id format: " + e.Reason }

// Parse decodes a stored format description.
func Parse(raw []byte) (Format, error) {
	var f Format
	if len(raw) == 0 {
		return f, &ConfigError{Reason: "empty format description"}
	}
	if err := json.Unmarshal(raw, &f); err != nil {
		return f, &ConfigError{Reason: "unparseable format description: " + err.Error()}
	}
	return f, nil
}

const guidAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generator interprets format descriptions. The zero value uses the shared
// process randomness and wall-clock time; tests inject their own.
type Generator struct {
	Rand *rand.Rand       // nil means the shared process source
	Now  func() time.Time // nil means time.Now
}

func (g *Generator) intN(n int) int {
	if g.Rand != nil {
		return g.Rand.Intn(n)
	}
	return rand.Intn(n)
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// Generate interprets f in element order. itemCount is the number of items
// currently persisted for the inventory; the sequence element emits
// itemCount+1.
func (g *Generator) Generate(f Format, itemCount int64) (string, error) {
	var b strings.Builder
	for _, el := range f.Elements {
		s, err := g.element(el, itemCount)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func (g *Generator) element(el Element, itemCount int64) (string, error) {
	switch el.Type {
	case FixedText:
		return el.Value, nil
	case Random:
		return g.randomValue(el.Format), nil
	case Sequence:
		return sequenceValue(el.Format, itemCount+1), nil
	case DateTime:
		return g.now().UTC().Format(toGoLayout(el.Format)), nil
	case Guid:
		id, err := nanoid.Generate(guidAlphabet, 10)
		if err != nil {
			return "", fmt.Errorf("generate guid element: %w", err)
		}
		return id, nil
	default:
		return "", &ConfigError{Reason: "unknown element type " + string(el.Type)}
	}
}

// randomValue emits a zero-padded decimal for "D<n>", n uppercase hex
// characters for "X<n>", and an empty string for anything else.
func (g *Generator) randomValue(format string) string {
	n, kind, ok := splitFormat(format)
	if !ok {
		return ""
	}
	switch kind {
	case 'D':
		max := pow10(n) - 1
		if max < 1 {
			return ""
		}
		return fmt.Sprintf("%0*d", n, g.intN(int(max)))
	case 'X':
		const hexDigits = "0123456789ABCDEF"
		out := make([]byte, n)
		for i := range out {
			out[i] = hexDigits[g.intN(16)]
		}
		return string(out)
	}
	return ""
}

// sequenceValue pads to the "D<n>" width when given, otherwise emits the
// plain decimal.
func sequenceValue(format string, next int64) string {
	if format == "" || format == "D" {
		return strconv.FormatInt(next, 10)
	}
	if n, kind, ok := splitFormat(format); ok && kind == 'D' {
		return fmt.Sprintf("%0*d", n, next)
	}
	return strconv.FormatInt(next, 10)
}

func splitFormat(format string) (width int, kind byte, ok bool) {
	if len(format) < 2 {
		return 0, 0, false
	}
	kind = format[0]
	if kind != 'D' && kind != 'X' {
		return 0, 0, false
	}
	n, err := strconv.Atoi(format[1:])
	if err != nil || n <= 0 || n > 18 {
		return 0, 0, false
	}
	return n, kind, true
}

func pow10(n int) int64 {
	v := int64(1)
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}

// toGoLayout maps the date tokens stored by format descriptions
// (yyyy, yy, MM, dd, HH, mm, ss) onto a Go time layout. Unrecognized runes
// pass through verbatim.
func toGoLayout(pattern string) string {
	replacer := strings.NewReplacer(
		"yyyy", "2006",
		"yy", "06",
		"MM", "01",
		"dd", "02",
		"HH", "15",
		"mm", "04",
		"ss", "05",
	)
	return replacer.Replace(pattern)
}

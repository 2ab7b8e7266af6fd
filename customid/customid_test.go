package customid

import (
	"errors"
	"math/rand"
	"regexp"
	"testing"
	"time"
)

func fixedGen() *Generator {
	return &Generator{
		Rand: rand.New(rand.NewSource(1)),
		Now:  func() time.Time { return time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC) },
	}
}

func TestGenerate_FixedTextAndSequence(t *testing.T) {
	f := Format{Elements: []Element{
		{Type: FixedText, Value: "INV-"},
		{Type: Sequence, Format: "D4"},
	}}
	g := fixedGen()

	got, err := g.Generate(f, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != "INV-0001" {
		t.Errorf("expected INV-0001, got %s", got)
	}

	got, err = g.Generate(f, 7)
	if err != nil {
		t.Fatal(err)
	}
	if got != "INV-0008" {
		t.Errorf("expected INV-0008, got %s", got)
	}
}

func TestGenerate_SequencePlain(t *testing.T) {
	g := fixedGen()
	for _, format := range []string{"", "D"} {
		f := Format{Elements: []Element{{Type: Sequence, Format: format}}}
		got, err := g.Generate(f, 41)
		if err != nil {
			t.Fatal(err)
		}
		if got != "42" {
			t.Errorf("format %q: expected 42, got %s", format, got)
		}
	}
}

func TestGenerate_SequenceUnrecognizedFormat(t *testing.T) {
	g := fixedGen()
	f := Format{Elements: []Element{{Type: Sequence, Format: "Q9"}}}
	got, err := g.Generate(f, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got != "5" {
		t.Errorf("unrecognized format should emit the plain decimal, got %s", got)
	}
}

func TestGenerate_RandomDecimal(t *testing.T) {
	g := fixedGen()
	f := Format{Elements: []Element{{Type: Random, Format: "D6"}}}

	shape := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 20; i++ {
		got, err := g.Generate(f, 0)
		if err != nil {
			t.Fatal(err)
		}
		if !shape.MatchString(got) {
			t.Fatalf("expected six decimal digits, got %q", got)
		}
	}
}

func TestGenerate_RandomHex(t *testing.T) {
	g := fixedGen()
	f := Format{Elements: []Element{{Type: Random, Format: "X8"}}}

	shape := regexp.MustCompile(`^[0-9A-F]{8}$`)
	for i := 0; i < 20; i++ {
		got, err := g.Generate(f, 0)
		if err != nil {
			t.Fatal(err)
		}
		if !shape.MatchString(got) {
			t.Fatalf("expected eight uppercase hex digits, got %q", got)
		}
	}
}

func TestGenerate_RandomBadFormatEmitsNothing(t *testing.T) {
	g := fixedGen()
	for _, format := range []string{"", "D", "D0", "Z4", "D99"} {
		f := Format{Elements: []Element{
			{Type: FixedText, Value: "A"},
			{Type: Random, Format: format},
			{Type: FixedText, Value: "B"},
		}}
		got, err := g.Generate(f, 0)
		if err != nil {
			t.Fatal(err)
		}
		if got != "AB" {
			t.Errorf("format %q: expected AB, got %s", format, got)
		}
	}
}

func TestGenerate_DateTime(t *testing.T) {
	g := fixedGen()
	f := Format{Elements: []Element{{Type: DateTime, Format: "yyyyMMdd"}}}

	got, err := g.Generate(f, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != "20240309" {
		t.Errorf("expected 20240309, got %s", got)
	}

	f = Format{Elements: []Element{{Type: DateTime, Format: "yy-MM-dd HH:mm:ss"}}}
	got, err = g.Generate(f, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != "24-03-09 14:05:06" {
		t.Errorf("expected 24-03-09 14:05:06, got %s", got)
	}
}

func TestGenerate_Guid(t *testing.T) {
	g := fixedGen()
	f := Format{Elements: []Element{{Type: Guid}}}

	shape := regexp.MustCompile(`^[A-Za-z0-9]{10}$`)
	got, err := g.Generate(f, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !shape.MatchString(got) {
		t.Errorf("expected ten alphanumeric characters, got %q", got)
	}
}

func TestGenerate_UnknownElementType(t *testing.T) {
	g := fixedGen()
	f := Format{Elements: []Element{{Type: "Barcode"}}}

	_, err := g.Generate(f, 0)
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestGenerate_EmptyFormat(t *testing.T) {
	g := fixedGen()
	got, err := g.Generate(Format{}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("empty element list should produce an empty id, got %q", got)
	}
}

func TestParse(t *testing.T) {
	raw := []byte(`{"elements":[{"type":"FixedText","value":"X-"},{"type":"Sequence","format":"D3"}]}`)
	f, err := Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(f.Elements))
	}
	if f.Elements[0].Value != "X-" || f.Elements[1].Format != "D3" {
		t.Errorf("unexpected decode: %+v", f.Elements)
	}
}

func TestParse_Malformed(t *testing.T) {
	var ce *ConfigError
	if _, err := Parse(nil); !errors.As(err, &ce) {
		t.Errorf("empty payload should be a ConfigError, got %v", err)
	}
	if _, err := Parse([]byte(`{broken`)); !errors.As(err, &ce) {
		t.Errorf("broken JSON should be a ConfigError, got %v", err)
	}
}

func TestDefaultFormat(t *testing.T) {
	g := fixedGen()
	got, err := g.Generate(DefaultFormat(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != "INV-1" {
		t.Errorf("expected INV-1, got %s", got)
	}
}

func TestZeroValueGenerator(t *testing.T) {
	var g Generator
	f := Format{Elements: []Element{{Type: Random, Format: "D4"}, {Type: DateTime, Format: "yyyy"}}}
	got, err := g.Generate(f, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 8 {
		t.Errorf("expected 4 digits plus a 4-digit year, got %q", got)
	}
}

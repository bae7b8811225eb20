package lumen

import (
	"bytes"
	"strings"
	"testing"
)

func TestEngineRunStringPrintsToConfiguredOutput(t *testing.T) {
	var buf bytes.Buffer
	e := New()
	e.SetOutput(&buf)

	if err := e.RunString(`var a = 1 + 2 * 3; print(a);`); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if buf.String() != "7\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestEngineRunStringPersistsStateAcrossCalls(t *testing.T) {
	var buf bytes.Buffer
	e := New()
	e.SetOutput(&buf)

	if err := e.RunString(`var a = 1;`); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := e.RunString(`print(a);`); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if buf.String() != "1\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestEngineRunReadsFromReader(t *testing.T) {
	var buf bytes.Buffer
	e := New()
	e.SetOutput(&buf)

	if err := e.Run(strings.NewReader(`print("hi");`)); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if buf.String() != "hi\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestEngineSetInputFeedsReadln(t *testing.T) {
	var buf bytes.Buffer
	e := New()
	e.SetOutput(&buf)
	e.SetInput(strings.NewReader("world\n"))

	if err := e.RunString(`print(readln());`); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if buf.String() != "world\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestEngineFormatRendersCaretForTypeError(t *testing.T) {
	e := New()
	source := "var x = ;"
	err := e.RunString(source)
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	formatted := e.Format(err, source)
	if !strings.Contains(formatted, "^") {
		t.Fatalf("expected a caret diagnostic, got %q", formatted)
	}
}

func TestEngineStopsAtFirstError(t *testing.T) {
	var buf bytes.Buffer
	e := New()
	e.SetOutput(&buf)

	err := e.RunString(`print(1); print(undefinedName); print(2);`)
	if err == nil {
		t.Fatalf("expected an error for the undefined identifier")
	}
	if buf.String() != "1\n" {
		t.Fatalf("expected only the first print to have run, got %q", buf.String())
	}
}

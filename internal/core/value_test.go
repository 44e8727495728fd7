package core

import "testing"

func TestTruthyBoolean(t *testing.T) {
	if !Boolean(true).Truthy() {
		t.Fatal("Boolean(true) should be truthy")
	}
	if Boolean(false).Truthy() {
		t.Fatal("Boolean(false) should be falsy")
	}
}

func TestTruthyNumberAndString(t *testing.T) {
	if Number(0).Truthy() {
		t.Fatal("Number(0) should be falsy")
	}
	if !Number(1).Truthy() {
		t.Fatal("Number(1) should be truthy")
	}
	if String("").Truthy() {
		t.Fatal("empty String should be falsy")
	}
	if !String("x").Truthy() {
		t.Fatal("non-empty String should be truthy")
	}
}

func TestTruthyNullAndOther(t *testing.T) {
	if Null().Truthy() {
		t.Fatal("Null should be falsy")
	}
	if !Array(nil).Truthy() {
		t.Fatal("Array should default truthy")
	}
}

func TestAsNumberRejectsNonNumber(t *testing.T) {
	if _, err := String("x").AsNumber(); err == nil {
		t.Fatal("expected error converting a String to Number")
	}
	if n, err := Number(3.5).AsNumber(); err != nil || n != 3.5 {
		t.Fatalf("AsNumber() = (%v, %v), want (3.5, nil)", n, err)
	}
}

func TestAsStringAcceptsIdentifier(t *testing.T) {
	s, err := Identifier("foo").AsString()
	if err != nil || s != "foo" {
		t.Fatalf("AsString() = (%q, %v), want (\"foo\", nil)", s, err)
	}
}

func TestDurationSecondsBeatsAndMillis(t *testing.T) {
	d := BeatsDuration(2)
	if got := d.Seconds(120); got != 1.0 {
		t.Fatalf("2 beats @ 120bpm = %v, want 1.0s", got)
	}
	if got := MillisDuration(500).Seconds(120); got != 0.5 {
		t.Fatalf("500ms = %v, want 0.5s", got)
	}
}

func TestDurationSecondsAutoIsOneBeat(t *testing.T) {
	if got := AutoDuration().Seconds(60); got != 1.0 {
		t.Fatalf("auto @ 60bpm = %v, want 1.0s", got)
	}
}

func TestDurationSecondsIdentifierResolvesToZero(t *testing.T) {
	if got := IdentDuration("x").Seconds(120); got != 0 {
		t.Fatalf("unresolved identifier duration = %v, want 0", got)
	}
}

func TestNewErrorCarriesLocation(t *testing.T) {
	stmt := NewError("boom", 3, 7)
	if stmt.Kind != StmtError || stmt.Message != "boom" || stmt.Line != 3 || stmt.Column != 7 {
		t.Fatalf("NewError produced unexpected statement: %+v", stmt)
	}
}

func TestStatementKindStringUnknownForOutOfRange(t *testing.T) {
	if got := StatementKind(999).String(); got != "Unknown" {
		t.Fatalf("String() = %q, want Unknown", got)
	}
}

package diag_test

import (
	"testing"

	"langtwo/internal/diag"
	"langtwo/internal/source"
)

func TestBagLimit(t *testing.T) {
	bag := diag.NewBag(2)
	span := source.Span{}
	if !bag.Error(diag.LexUnexpectedChar, span, "one") {
		t.Fatal("first add dropped")
	}
	if !bag.Error(diag.LexUnexpectedChar, span, "two") {
		t.Fatal("second add dropped")
	}
	if bag.Error(diag.LexUnexpectedChar, span, "three") {
		t.Fatal("third add must be dropped at the cap")
	}
	if bag.Len() != 2 {
		t.Fatalf("len = %d, want 2", bag.Len())
	}
}

func TestBagSeverity(t *testing.T) {
	bag := diag.NewBag(4)
	bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.LexUnexpectedChar, Message: "w"})
	if bag.HasErrors() {
		t.Fatal("a warning alone is not an error")
	}
	bag.Error(diag.ParseExpectedExpr, source.Span{}, "e")
	if !bag.HasErrors() {
		t.Fatal("error not detected")
	}
}

func TestCodeID(t *testing.T) {
	if got := diag.ParseExpectedToken.ID(); got != "LT0101" {
		t.Fatalf("ID = %q, want LT0101", got)
	}
	if got := diag.LexUnexpectedChar.ID(); got != "LT0001" {
		t.Fatalf("ID = %q, want LT0001", got)
	}
}

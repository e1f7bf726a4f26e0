package params_test

import (
	"testing"

	"pfsfiber/internal/params"
)

func TestParseSplitsOnEquals(t *testing.T) {
	s, err := params.Parse([]string{"assigner=naive", "fract=0.9", "output=out.txt"})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if s.String("assigner", "") != "naive" {
		t.Fatalf("assigner = %q, want naive", s.String("assigner", ""))
	}
}

func TestParseRejectsMissingEquals(t *testing.T) {
	if _, err := params.Parse([]string{"notkeyvalue"}); err == nil {
		t.Fatal("expected an error for an argument without '='")
	}
}

func TestRequireMissingKey(t *testing.T) {
	s, _ := params.Parse(nil)
	if _, err := s.Require("assigner"); err == nil {
		t.Fatal("expected an error for a missing required key")
	}
}

func TestFloatDefaultAndParse(t *testing.T) {
	s, _ := params.Parse([]string{"dptg=0.5"})
	got, err := s.Float("dptg", 99)
	if err != nil || got != 0.5 {
		t.Fatalf("Float(dptg) = %v, %v, want 0.5, nil", got, err)
	}
	got, err = s.Float("missing", 99)
	if err != nil || got != 99 {
		t.Fatalf("Float(missing) = %v, %v, want 99, nil", got, err)
	}
}

func TestIntDefaultAndParse(t *testing.T) {
	s, _ := params.Parse([]string{"nptg=7"})
	got, err := s.Int("nptg", 5)
	if err != nil || got != 7 {
		t.Fatalf("Int(nptg) = %v, %v, want 7, nil", got, err)
	}
}

func TestHas(t *testing.T) {
	s, _ := params.Parse([]string{"ra=10"})
	if !s.Has("ra") {
		t.Fatal("expected Has(ra) to be true")
	}
	if s.Has("dec") {
		t.Fatal("expected Has(dec) to be false")
	}
}

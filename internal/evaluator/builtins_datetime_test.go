package evaluator

import "testing"

func TestDateFormatStrftime(t *testing.T) {
	got := mustDisplay(t, `date_format "2024-03-15T10:30:00Z" "%Y-%m-%d"`)
	if got != "2024-03-15" {
		t.Errorf("got %q", got)
	}
}

func TestDateParseStrftimeToRFC3339(t *testing.T) {
	got := mustDisplay(t, `date_parse "2024-03-15" "%Y-%m-%d"`)
	if got != "2024-03-15T00:00:00Z" {
		t.Errorf("got %q", got)
	}
}

func TestDateAddDays(t *testing.T) {
	got := mustDisplay(t, `date_add "2024-03-15T00:00:00Z" "1d"`)
	if got != "2024-03-16T00:00:00Z" {
		t.Errorf("got %q", got)
	}
}

func TestDateAddNegativeHours(t *testing.T) {
	got := mustDisplay(t, `date_add "2024-03-15T10:00:00Z" "-2h"`)
	if got != "2024-03-15T08:00:00Z" {
		t.Errorf("got %q", got)
	}
}

func TestDateDiffSeconds(t *testing.T) {
	got := mustDisplay(t, `date_diff "2024-03-15T00:00:00Z" "2024-03-16T00:00:00Z"`)
	if got != "86400" {
		t.Errorf("got %q", got)
	}
}

func TestDateAddInvalidDurationIsError(t *testing.T) {
	_, err := runSrc(t, `date_add "2024-03-15T00:00:00Z" "banana"`)
	if err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestDateFormatInvalidDateIsError(t *testing.T) {
	_, err := runSrc(t, `date_format "not a date" "%Y"`)
	if err == nil {
		t.Fatal("expected error for unparseable date")
	}
}

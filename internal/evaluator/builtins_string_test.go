package evaluator

import "testing"

func TestStringConcatUpperLowerTrim(t *testing.T) {
	if got := mustDisplay(t, `concat "foo" "bar"`); got != "foobar" {
		t.Errorf("concat got %q", got)
	}
	if got := mustDisplay(t, `upper "abc"`); got != "ABC" {
		t.Errorf("upper got %q", got)
	}
	if got := mustDisplay(t, `lower "ABC"`); got != "abc" {
		t.Errorf("lower got %q", got)
	}
	if got := mustDisplay(t, `trim "  x  "`); got != "x" {
		t.Errorf("trim got %q", got)
	}
}

func TestStringContainsStartsEndsWith(t *testing.T) {
	if got := mustDisplay(t, `contains "hello world" "world"`); got != "true" {
		t.Errorf("got %q", got)
	}
	if got := mustDisplay(t, `starts_with "hello" "he"`); got != "true" {
		t.Errorf("got %q", got)
	}
	if got := mustDisplay(t, `ends_with "hello" "lo"`); got != "true" {
		t.Errorf("got %q", got)
	}
}

func TestStringSplitJoin(t *testing.T) {
	if got := mustDisplay(t, `split "a,b,c" ","`); got != "[a, b, c]" {
		t.Errorf("split got %q", got)
	}
	if got := mustDisplay(t, `join [1,2,3] "-"`); got != "1-2-3" {
		t.Errorf("join got %q", got)
	}
}

func TestStringReplaceReplacesAllOccurrences(t *testing.T) {
	got := mustDisplay(t, `replace "a.b.c" "." "_"`)
	if got != "a_b_c" {
		t.Errorf("got %q", got)
	}
}

func TestStringLengthStringsTemplatesLists(t *testing.T) {
	if got := mustDisplay(t, `length "hello"`); got != "5" {
		t.Errorf("string length got %q", got)
	}
	if got := mustDisplay(t, `length [1,2,3]`); got != "3" {
		t.Errorf("list length got %q", got)
	}
}

func TestStringRepeat(t *testing.T) {
	got := mustDisplay(t, `repeat "ab" 3`)
	if got != "ababab" {
		t.Errorf("got %q", got)
	}
}

func TestStringPadLeftPadRight(t *testing.T) {
	if got := mustDisplay(t, `pad_left "7" 3 "0"`); got != "007" {
		t.Errorf("got %q", got)
	}
	if got := mustDisplay(t, `pad_right "7" 3 "0"`); got != "700" {
		t.Errorf("got %q", got)
	}
}

func TestStringIndentPerLine(t *testing.T) {
	got := mustDisplay(t, `indent "a\nb" 2`)
	want := "  a\n  b"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestStringCharPredicates(t *testing.T) {
	if got := mustDisplay(t, `is_alpha "abc"`); got != "true" {
		t.Errorf("is_alpha got %q", got)
	}
	if got := mustDisplay(t, `is_digit "123"`); got != "true" {
		t.Errorf("is_digit got %q", got)
	}
	if got := mustDisplay(t, `is_alnum "a1"`); got != "true" {
		t.Errorf("is_alnum got %q", got)
	}
	if got := mustDisplay(t, `is_space "   "`); got != "true" {
		t.Errorf("is_space got %q", got)
	}
	if got := mustDisplay(t, `is_upper "ABC"`); got != "true" {
		t.Errorf("is_upper got %q", got)
	}
	if got := mustDisplay(t, `is_lower "abc"`); got != "true" {
		t.Errorf("is_lower got %q", got)
	}
	if got := mustDisplay(t, `is_empty ""`); got != "true" {
		t.Errorf("is_empty got %q", got)
	}
	if got := mustDisplay(t, `is_empty []`); got != "true" {
		t.Errorf("is_empty list got %q", got)
	}
}

func TestStringSliceClampsAndReverseIsEmpty(t *testing.T) {
	if got := mustDisplay(t, `slice "hello" 1 3`); got != "el" {
		t.Errorf("got %q", got)
	}
	if got := mustDisplay(t, `slice "hello" 3 1`); got != "" {
		t.Errorf("reverse-order slice should be empty, got %q", got)
	}
	if got := mustDisplay(t, `slice "hello" 0 100`); got != "hello" {
		t.Errorf("out-of-range clamps, got %q", got)
	}
}

func TestStringSliceNegativeIndexClampsTowardLen(t *testing.T) {
	if got := mustDisplay(t, `slice "hello" (0 - 1) 3`); got != "" {
		t.Errorf("negative start clamps toward len not 0, got %q", got)
	}
	if got := mustDisplay(t, `slice "hello" (0 - 5) (0 - 1)`); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestStringCharAtOutOfRangeIsNone(t *testing.T) {
	if got := mustDisplay(t, `char_at "hi" 0`); got != "h" {
		t.Errorf("got %q", got)
	}
	if got := mustDisplay(t, `char_at "hi" 10`); got != "none" {
		t.Errorf("got %q", got)
	}
}

func TestStringChars(t *testing.T) {
	got := mustDisplay(t, `chars "ab"`)
	if got != "[a, b]" {
		t.Errorf("got %q", got)
	}
}

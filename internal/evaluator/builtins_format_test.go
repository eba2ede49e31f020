package evaluator

import "testing"

func TestFormatIntPadsWithWidth(t *testing.T) {
	if got := mustDisplay(t, `format_int 5 3`); got != "005" {
		t.Errorf("got %q", got)
	}
	if got := mustDisplay(t, `format_int (0 - 5) 3`); got != "-005" {
		t.Errorf("got %q", got)
	}
}

func TestFormatFloatPrecision(t *testing.T) {
	if got := mustDisplay(t, `format_float 3.14159 2`); got != "3.14" {
		t.Errorf("got %q", got)
	}
}

func TestFormatHexOctalBinary(t *testing.T) {
	if got := mustDisplay(t, `format_hex 255`); got != "ff" {
		t.Errorf("hex got %q", got)
	}
	if got := mustDisplay(t, `format_octal 8`); got != "10" {
		t.Errorf("octal got %q", got)
	}
	if got := mustDisplay(t, `format_binary 5`); got != "101" {
		t.Errorf("binary got %q", got)
	}
}

func TestFormatScientific(t *testing.T) {
	got := mustDisplay(t, `format_scientific 1234.5 2`)
	if got != "1.23e+03" {
		t.Errorf("got %q", got)
	}
}

func TestFormatBytes(t *testing.T) {
	got := mustDisplay(t, `format_bytes 1024`)
	if got != "1.0 KiB" {
		t.Errorf("got %q", got)
	}
}

func TestFormatListJoinsWithSeparator(t *testing.T) {
	got := mustDisplay(t, `format_list [1,2,3] ", "`)
	if got != "1, 2, 3" {
		t.Errorf("got %q", got)
	}
}

func TestFormatTableFromDict(t *testing.T) {
	got := mustDisplay(t, `format_table {b: 2, a: 1} ","`)
	want := "a,b\n1,2"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestFormatTableFromListOfLists(t *testing.T) {
	got := mustDisplay(t, `format_table [[1,2],[3,4]] ","`)
	want := "1,2\n3,4"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestFormatJSONNestedStructure(t *testing.T) {
	got := mustDisplay(t, `format_json {a: 1, b: [1,2,"x"]}`)
	want := `{"a":1,"b":[1,2,"x"]}`
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestFormatCurrencyAndPercent(t *testing.T) {
	if got := mustDisplay(t, `format_currency 9.5 "$"`); got != "$9.50" {
		t.Errorf("got %q", got)
	}
	if got := mustDisplay(t, `format_percent 0.5 1`); got != "50.0%" {
		t.Errorf("got %q", got)
	}
}

func TestFormatBoolStyles(t *testing.T) {
	if got := mustDisplay(t, `format_bool true "yesno"`); got != "yes" {
		t.Errorf("got %q", got)
	}
	if got := mustDisplay(t, `format_bool false "onoff"`); got != "off" {
		t.Errorf("got %q", got)
	}
	if got := mustDisplay(t, `format_bool true "Y/N"`); got != "Y" {
		t.Errorf("got %q", got)
	}
}

func TestTruncateAddsEllipsis(t *testing.T) {
	if got := mustDisplay(t, `truncate "hello world" 5`); got != "hell…" {
		t.Errorf("got %q", got)
	}
	if got := mustDisplay(t, `truncate "hi" 5`); got != "hi" {
		t.Errorf("got %q", got)
	}
}

func TestCenterPadsEvenly(t *testing.T) {
	if got := mustDisplay(t, `center "hi" 6`); got != "  hi  " {
		t.Errorf("got %q", got)
	}
}

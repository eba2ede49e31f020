package evaluator

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ncruces/go-strftime"

	"github.com/pyrotek45/avon/internal/avonerr"
)

// execDatetime implements the datetime category (spec.md §4.6).
// date_format/date_parse convert strftime-style format strings to Go's
// reference layout via github.com/ncruces/go-strftime rather than a
// hand-rolled directive table, per SPEC_FULL.md's domain-stack wiring.
func execDatetime(name string, args []Value, line int) (Value, error) {
	switch name {
	case "now":
		return Str(time.Now().Format("2006-01-02T15:04:05-07:00")), nil
	case "timestamp":
		return Int(time.Now().Unix()), nil
	case "timezone":
		_, offset := time.Now().Zone()
		return Str(formatOffset(offset)), nil
	case "date_format":
		return dateFormat(args, line)
	case "date_parse":
		return dateParse(args, line)
	case "date_add":
		return dateAdd(args, line)
	case "date_diff":
		return dateDiff(args, line)
	case "uuid":
		return Str(uuid.New().String()), nil
	default:
		return Value{}, avonerr.Newf(line, "unimplemented datetime builtin %q", name)
	}
}

func formatOffset(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%02d:%02d", sign, seconds/3600, (seconds%3600)/60)
}

func dateFormat(args []Value, line int) (Value, error) {
	dateStr, err := asString(args[0], line)
	if err != nil {
		return Value{}, err
	}
	format, err := asString(args[1], line)
	if err != nil {
		return Value{}, err
	}
	t, perr := time.Parse(time.RFC3339, dateStr)
	if perr != nil {
		return Value{}, avonerr.NewFileError(line, fmt.Sprintf("date_format: cannot parse %q as a date", dateStr))
	}
	return Str(strftime.Format(format, t)), nil
}

func dateParse(args []Value, line int) (Value, error) {
	dateStr, err := asString(args[0], line)
	if err != nil {
		return Value{}, err
	}
	format, err := asString(args[1], line)
	if err != nil {
		return Value{}, err
	}
	layout := strftime.Layout(format)
	t, perr := time.Parse(layout, dateStr)
	if perr != nil {
		return Value{}, avonerr.NewFileError(line, fmt.Sprintf("date_parse: %q does not match format %q", dateStr, format))
	}
	return Str(t.Format(time.RFC3339)), nil
}

// dateAdd implements the duration grammar confirmed against
// original_source/src/eval/builtins/datetime.rs: an optional sign, then
// digits, then a unit in {s,m,h,d,w,y}; y is defined as exactly 365d.
func dateAdd(args []Value, line int) (Value, error) {
	dateStr, err := asString(args[0], line)
	if err != nil {
		return Value{}, err
	}
	durStr, err := asString(args[1], line)
	if err != nil {
		return Value{}, err
	}
	t, perr := time.Parse(time.RFC3339, dateStr)
	if perr != nil {
		return Value{}, avonerr.NewFileError(line, fmt.Sprintf("date_add: cannot parse %q as a date", dateStr))
	}
	d, derr := parseAvonDuration(durStr)
	if derr != nil {
		return Value{}, avonerr.NewFileError(line, derr.Error())
	}
	return Str(t.Add(d).Format(time.RFC3339)), nil
}

func dateDiff(args []Value, line int) (Value, error) {
	aStr, err := asString(args[0], line)
	if err != nil {
		return Value{}, err
	}
	bStr, err := asString(args[1], line)
	if err != nil {
		return Value{}, err
	}
	ta, perr := time.Parse(time.RFC3339, aStr)
	if perr != nil {
		return Value{}, avonerr.NewFileError(line, fmt.Sprintf("date_diff: cannot parse %q as a date", aStr))
	}
	tb, perr := time.Parse(time.RFC3339, bStr)
	if perr != nil {
		return Value{}, avonerr.NewFileError(line, fmt.Sprintf("date_diff: cannot parse %q as a date", bStr))
	}
	return Int(int64(tb.Sub(ta).Seconds())), nil
}

func parseAvonDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	sign := time.Duration(1)
	i := 0
	if s[0] == '+' || s[0] == '-' {
		if s[0] == '-' {
			sign = -1
		}
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0, fmt.Errorf("invalid duration %q: missing digits", s)
	}
	var n int64
	fmt.Sscanf(s[start:i], "%d", &n)
	if i >= len(s) {
		return 0, fmt.Errorf("invalid duration %q: missing unit", s)
	}
	unit := s[i:]
	var per time.Duration
	switch unit {
	case "s":
		per = time.Second
	case "m":
		per = time.Minute
	case "h":
		per = time.Hour
	case "d":
		per = 24 * time.Hour
	case "w":
		per = 7 * 24 * time.Hour
	case "y":
		per = 365 * 24 * time.Hour
	default:
		return 0, fmt.Errorf("invalid duration unit %q", unit)
	}
	return sign * time.Duration(n) * per, nil
}

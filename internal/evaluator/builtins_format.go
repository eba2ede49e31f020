package evaluator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/pyrotek45/avon/internal/avonconfig"
	"github.com/pyrotek45/avon/internal/avonerr"
)

// execFormat implements the formatting category (spec.md §4.6).
// format_bytes uses github.com/dustin/go-humanize.IBytes (1024-based
// thresholds) rather than a hand-rolled table, promoted from the
// teacher's indirect dependency closure per SPEC_FULL.md.
func execFormat(name string, args []Value, line int) (Value, error) {
	switch name {
	case "format_int":
		return formatInt(args, line)
	case "format_float":
		return formatFloat(args, line)
	case "format_hex":
		n, err := asInt(args[0], line)
		if err != nil {
			return Value{}, err
		}
		return Str(strconv.FormatInt(n, 16)), nil
	case "format_octal":
		n, err := asInt(args[0], line)
		if err != nil {
			return Value{}, err
		}
		return Str(strconv.FormatInt(n, 8)), nil
	case "format_binary":
		n, err := asInt(args[0], line)
		if err != nil {
			return Value{}, err
		}
		return Str(strconv.FormatInt(n, 2)), nil
	case "format_scientific":
		n, err := asNumber(args[0], line)
		if err != nil {
			return Value{}, err
		}
		prec, err := asInt(args[1], line)
		if err != nil {
			return Value{}, err
		}
		return Str(strconv.FormatFloat(n.AsFloat(), 'e', int(prec), 64)), nil
	case "format_bytes":
		n, err := asNumber(args[0], line)
		if err != nil {
			return Value{}, err
		}
		return Str(humanize.IBytes(uint64(n.AsFloat()))), nil
	case "format_list":
		return formatList(args, line)
	case "format_table":
		return formatTable(args, line)
	case "format_json":
		return Str(formatJSON(args[0], 0)), nil
	case "format_currency":
		n, err := asNumber(args[0], line)
		if err != nil {
			return Value{}, err
		}
		symbol, err := asString(args[1], line)
		if err != nil {
			return Value{}, err
		}
		return Str(fmt.Sprintf("%s%.2f", symbol, n.AsFloat())), nil
	case "format_percent":
		n, err := asNumber(args[0], line)
		if err != nil {
			return Value{}, err
		}
		prec, err := asInt(args[1], line)
		if err != nil {
			return Value{}, err
		}
		return Str(fmt.Sprintf("%.*f%%", int(prec), n.AsFloat()*100)), nil
	case "format_bool":
		return formatBool(args, line)
	case "truncate":
		return truncateStr(args, line)
	case "center":
		return centerStr(args, line)
	default:
		return Value{}, avonerr.Newf(line, "unimplemented formatting builtin %q", name)
	}
}

func formatInt(args []Value, line int) (Value, error) {
	n, err := asInt(args[0], line)
	if err != nil {
		return Value{}, err
	}
	width, err := asInt(args[1], line)
	if err != nil {
		return Value{}, err
	}
	s := strconv.FormatInt(n, 10)
	if width > 0 {
		neg := strings.HasPrefix(s, "-")
		digits := strings.TrimPrefix(s, "-")
		for int64(len(digits)) < width {
			digits = "0" + digits
		}
		if neg {
			s = "-" + digits
		} else {
			s = digits
		}
	}
	return Str(s), nil
}

func formatFloat(args []Value, line int) (Value, error) {
	f, err := asNumber(args[0], line)
	if err != nil {
		return Value{}, err
	}
	prec, err := asInt(args[1], line)
	if err != nil {
		return Value{}, err
	}
	return Str(strconv.FormatFloat(f.AsFloat(), 'f', int(prec), 64)), nil
}

func formatList(args []Value, line int) (Value, error) {
	list, err := asList(args[0], line)
	if err != nil {
		return Value{}, err
	}
	sep, err := asString(args[1], line)
	if err != nil {
		return Value{}, err
	}
	parts := make([]string, len(list))
	for i, v := range list {
		parts[i] = ToDisplayString(v, 0, 200, 100)
	}
	return Str(strings.Join(parts, sep)), nil
}

// formatTable implements spec.md §4.6 & §9: a Dict input emits two rows
// (keys, values) in unspecified column order; a List-of-lists input
// emits each inner list as a row.
func formatTable(args []Value, line int) (Value, error) {
	sep, err := asString(args[1], line)
	if err != nil {
		return Value{}, err
	}
	var rows [][]string
	switch args[0].Kind {
	case KindDict:
		keys := dictKeys(args[0].Dict)
		vals := make([]string, len(keys))
		for i, k := range keys {
			vals[i] = ToDisplayString(args[0].Dict[k], 0, 200, 100)
		}
		rows = [][]string{keys, vals}
	case KindList:
		for _, rowV := range args[0].List {
			if rowV.Kind != KindList {
				return Value{}, avonerr.NewTypeMismatch("list of lists", rowV.Kind.String(), line)
			}
			row := make([]string, len(rowV.List))
			for i, c := range rowV.List {
				row[i] = ToDisplayString(c, 0, 200, 100)
			}
			rows = append(rows, row)
		}
	default:
		return Value{}, avonerr.NewTypeMismatch("Dict or list of lists", args[0].Kind.String(), line)
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, sep)
	}
	return Str(strings.Join(lines, "\n")), nil
}

func formatJSON(v Value, depth int) string {
	if depth > avonconfig.MaxStringifyDepth {
		return `"<recursion limit exceeded>"`
	}
	switch v.Kind {
	case KindNone:
		return "null"
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNumber:
		if v.IsFloat {
			return strconv.FormatFloat(v.Float, 'g', -1, 64)
		}
		return strconv.FormatInt(v.Int, 10)
	case KindString:
		return jsonQuote(v.Str)
	case KindList:
		parts := make([]string, len(v.List))
		for i, e := range v.List {
			parts[i] = formatJSON(e, depth+1)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case KindDict:
		keys := dictKeys(v.Dict)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = jsonQuote(k) + ":" + formatJSON(v.Dict[k], depth+1)
		}
		return "{" + strings.Join(parts, ",") + "}"
	default:
		return jsonQuote(ToDisplayString(v, depth, avonconfig.MaxStringifyDepth, avonconfig.MaxDictStringifyEntries))
	}
}

func jsonQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func formatBool(args []Value, line int) (Value, error) {
	if err := wantKind(args[0], KindBool, line); err != nil {
		return Value{}, err
	}
	style, err := asString(args[1], line)
	if err != nil {
		return Value{}, err
	}
	b := args[0].Bool
	switch {
	case style == "yesno":
		return Str(pick(b, "yes", "no")), nil
	case style == "onoff":
		return Str(pick(b, "on", "off")), nil
	case style == "truefalse":
		return Str(pick(b, "true", "false")), nil
	case style == "10":
		return Str(pick(b, "1", "0")), nil
	case style == "enabled":
		return Str(pick(b, "enabled", "disabled")), nil
	case style == "active":
		return Str(pick(b, "active", "inactive")), nil
	case strings.Contains(style, "/"):
		parts := strings.SplitN(style, "/", 2)
		return Str(pick(b, parts[0], parts[1])), nil
	default:
		return Value{}, avonerr.Newf(line, "format_bool: unknown style %q", style)
	}
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

func truncateStr(args []Value, line int) (Value, error) {
	s, err := asString(args[0], line)
	if err != nil {
		return Value{}, err
	}
	max, err := asInt(args[1], line)
	if err != nil {
		return Value{}, err
	}
	runes := []rune(s)
	if int64(len(runes)) <= max {
		return Str(s), nil
	}
	if max > 3 {
		return Str(string(runes[:max-1]) + "…"), nil
	}
	return Str(string(runes[:max])), nil
}

func centerStr(args []Value, line int) (Value, error) {
	s, err := asString(args[0], line)
	if err != nil {
		return Value{}, err
	}
	width, err := asInt(args[1], line)
	if err != nil {
		return Value{}, err
	}
	runes := []rune(s)
	need := int(width) - len(runes)
	if need <= 0 {
		return Str(s), nil
	}
	left := need / 2
	right := need - left
	return Str(strings.Repeat(" ", left) + s + strings.Repeat(" ", right)), nil
}

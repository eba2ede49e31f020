// Builtin registry and category dispatch (spec.md §4.6). The registry is
// a pair of flat maps — arity and category — rather than the teacher's
// per-package module registration (funxy's internal/modules virtual
// package system), because Avon has a closed, fixed builtin set with no
// user-definable modules; a flat table is the simplest faithful match to
// spec.md's "The registry enumerates every builtin by category".
package evaluator

import "github.com/pyrotek45/avon/internal/avonerr"

const (
	catString   = "string"
	catList     = "list"
	catDict     = "dict"
	catAggr     = "aggregate"
	catMath     = "math"
	catTypes    = "types"
	catEnv      = "env"
	catDatetime = "datetime"
	catFormat   = "formatting"
	catRegex    = "regex"
	catMarkdown = "markdown"
	catDebug    = "debug"
	catFileIO   = "fileio"
)

// registryArity maps every builtin name to its arity; registryCategory
// maps it to the category executor that handles it once the arity is
// reached (spec.md §4.6 "Dispatch ... name collisions between categories
// are prohibited by construction").
var registryArity = map[string]int{
	// string
	"concat": 2, "upper": 1, "lower": 1, "trim": 1,
	"contains": 2, "starts_with": 2, "ends_with": 2,
	"split": 2, "join": 2, "replace": 3, "length": 1, "repeat": 2,
	"pad_left": 3, "pad_right": 3, "indent": 2,
	"is_alpha": 1, "is_digit": 1, "is_alnum": 1, "is_space": 1,
	"is_upper": 1, "is_lower": 1, "is_empty": 1,
	"slice": 3, "char_at": 2, "chars": 1,

	// list
	"drop": 2, "enumerate": 1, "filter": 2, "flatmap": 2, "flatten": 1,
	"fold": 3, "head": 1, "map": 2, "partition": 2, "range": 2,
	"reverse": 1, "sort": 1, "sort_by": 2, "split_at": 2, "tail": 1,
	"take": 2, "unique": 1, "unzip": 1, "zip": 2,

	// dict
	"get": 2, "set": 3, "has_key": 2, "keys": 1, "values": 1, "dict_merge": 2,

	// aggregate
	"sum": 1, "product": 1, "min": 1, "max": 1,
	"all": 2, "any": 2, "count": 2,

	// math
	"neg": 1,

	// types
	"typeof": 1,
	"is_none": 1, "is_bool": 1, "is_number": 1, "is_string": 1,
	"is_template": 1, "is_path": 1, "is_list": 1, "is_dict": 1,
	"is_function": 1, "is_builtin": 1, "is_file_template": 1,
	"to_string": 1, "to_int": 1, "to_float": 1, "to_bool": 1,
	"to_char": 1, "to_list": 1,

	// env
	"env_var": 1, "env_var_or": 2,

	// datetime
	"now": 0, "timestamp": 0, "timezone": 0,
	"date_format": 2, "date_parse": 2, "date_add": 2, "date_diff": 2,
	"uuid": 0,

	// formatting
	"format_int": 2, "format_float": 2,
	"format_hex": 1, "format_octal": 1, "format_binary": 1,
	"format_scientific": 2, "format_bytes": 1,
	"format_list": 2, "format_table": 2, "format_json": 1,
	"format_currency": 2, "format_percent": 2, "format_bool": 2,
	"truncate": 2, "center": 2,

	// regex
	"regex_match": 2, "regex_replace": 3, "regex_split": 2, "scan": 2,

	// markdown/html
	"md_heading": 2, "md_link": 2, "md_code": 2, "md_list": 1,
	"markdown_to_html": 1,
	"html_escape": 1, "html_tag": 2, "html_attr": 2,

	// debug/assert
	"not": 1, "assert": 2, "error": 1,
	"trace": 2, "debug": 2, "spy": 1, "tap": 2,

	// file/io
	"import": 1, "readfile": 1, "readlines": 1, "walkdir": 1, "glob": 1,
	"exists": 1, "basename": 1, "dirname": 1, "abspath": 1, "relpath": 2,
	"json_parse": 1, "yaml_parse": 1, "toml_parse": 1, "ini_parse": 1,
	"csv_parse": 2, "xml_parse": 1, "fill_template": 2,
}

var registryCategory = map[string]string{}

func registerCategory(cat string, names ...string) {
	for _, n := range names {
		registryCategory[n] = cat
	}
}

func init() {
	registerCategory(catString, "concat", "upper", "lower", "trim",
		"contains", "starts_with", "ends_with", "split", "join", "replace",
		"length", "repeat", "pad_left", "pad_right", "indent",
		"is_alpha", "is_digit", "is_alnum", "is_space", "is_upper", "is_lower",
		"is_empty", "slice", "char_at", "chars")
	registerCategory(catList, "drop", "enumerate", "filter", "flatmap",
		"flatten", "fold", "head", "map", "partition", "range", "reverse",
		"sort", "sort_by", "split_at", "tail", "take", "unique", "unzip", "zip")
	registerCategory(catDict, "get", "set", "has_key", "keys", "values", "dict_merge")
	registerCategory(catAggr, "sum", "product", "min", "max", "all", "any", "count")
	registerCategory(catMath, "neg")
	registerCategory(catTypes, "typeof", "is_none", "is_bool", "is_number",
		"is_string", "is_template", "is_path", "is_list", "is_dict",
		"is_function", "is_builtin", "is_file_template",
		"to_string", "to_int", "to_float", "to_bool", "to_char", "to_list")
	registerCategory(catEnv, "env_var", "env_var_or")
	registerCategory(catDatetime, "now", "timestamp", "timezone",
		"date_format", "date_parse", "date_add", "date_diff", "uuid")
	registerCategory(catFormat, "format_int", "format_float", "format_hex",
		"format_octal", "format_binary", "format_scientific", "format_bytes",
		"format_list", "format_table", "format_json", "format_currency",
		"format_percent", "format_bool", "truncate", "center")
	registerCategory(catRegex, "regex_match", "regex_replace", "regex_split", "scan")
	registerCategory(catMarkdown, "md_heading", "md_link", "md_code", "md_list",
		"markdown_to_html", "html_escape", "html_tag", "html_attr")
	registerCategory(catDebug, "not", "assert", "error", "trace", "debug", "spy", "tap")
	registerCategory(catFileIO, "import", "readfile", "readlines", "walkdir",
		"glob", "exists", "basename", "dirname", "abspath", "relpath",
		"json_parse", "yaml_parse", "toml_parse", "ini_parse", "csv_parse",
		"xml_parse", "fill_template")
}

// IsBuiltin reports whether name is a registered builtin.
func IsBuiltin(name string) bool {
	_, ok := registryArity[name]
	return ok
}

// Arity returns the builtin's declared arity, or -1 if unregistered.
func Arity(name string) int {
	if a, ok := registryArity[name]; ok {
		return a
	}
	return -1
}

// ExecuteBuiltin dispatches a fully-saturated builtin call to its
// category executor (spec.md §4.6 "Dispatch").
func ExecuteBuiltin(name string, args []Value, line int) (Value, error) {
	cat, ok := registryCategory[name]
	if !ok {
		return Value{}, avonerr.Newf(line, "unregistered builtin %q", name)
	}
	var v Value
	var err error
	switch cat {
	case catString:
		v, err = execString(name, args, line)
	case catList:
		v, err = execList(name, args, line)
	case catDict:
		v, err = execDict(name, args, line)
	case catAggr:
		v, err = execAggregate(name, args, line)
	case catMath:
		v, err = execMath(name, args, line)
	case catTypes:
		v, err = execTypes(name, args, line)
	case catEnv:
		v, err = execEnv(name, args, line)
	case catDatetime:
		v, err = execDatetime(name, args, line)
	case catFormat:
		v, err = execFormat(name, args, line)
	case catRegex:
		v, err = execRegex(name, args, line)
	case catMarkdown:
		v, err = execMarkdown(name, args, line)
	case catDebug:
		v, err = execDebug(name, args, line)
	case catFileIO:
		v, err = execFileIO(name, args, line)
	default:
		return Value{}, avonerr.Newf(line, "unregistered builtin category %q", cat)
	}
	if err != nil {
		if ae, ok := err.(*avonerr.Error); ok {
			return Value{}, ae.WithContext(name)
		}
		return Value{}, err
	}
	return v, nil
}

// InitialEnv builds the standard symbol table (spec.md §6
// "initial_builtins"): every builtin bound to an empty-accumulator
// Builtin value, plus the `os` and `args` process constants.
func InitialEnv(osName string, cliArgs []string) *Env {
	env := NewEnv()
	for name := range registryArity {
		_ = env.Insert(name, Value{Kind: KindBuiltin, BuiltinName: name})
	}
	argVals := make([]Value, len(cliArgs))
	for i, a := range cliArgs {
		argVals[i] = Str(a)
	}
	_ = env.Insert("os", Str(osName))
	_ = env.Insert("args", List(argVals))
	return env
}

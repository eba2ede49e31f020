package evaluator

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/pyrotek45/avon/internal/avonerr"
	"github.com/pyrotek45/avon/internal/lexer"
	"github.com/pyrotek45/avon/internal/parser"
)

// execFileIO implements the file/io category (spec.md §4.6), wiring
// gopkg.in/yaml.v3, github.com/BurntSushi/toml, and gopkg.in/ini.v1 for
// the config-format parsers named in SPEC_FULL.md's domain stack; JSON
// and XML stay on the standard library since no pack example offers an
// alternative serializer for either.
func execFileIO(name string, args []Value, line int) (Value, error) {
	switch name {
	case "import":
		return builtinImport(args[0], line)
	case "readfile":
		return readFileValue(args[0], line)
	case "readlines":
		return readLines(args[0], line)
	case "walkdir":
		return walkDir(args[0], line)
	case "glob":
		return globPattern(args[0], line)
	case "exists":
		p, err := validatedPath(args[0], line)
		if err != nil {
			return Value{}, err
		}
		_, statErr := os.Stat(p)
		return Bool(statErr == nil), nil
	case "basename":
		p, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		return Str(filepath.Base(p)), nil
	case "dirname":
		p, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		return Str(filepath.Dir(p)), nil
	case "abspath":
		p, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		abs, aerr := filepath.Abs(p)
		if aerr != nil {
			return Value{}, avonerr.NewFileError(line, aerr.Error())
		}
		return Str(abs), nil
	case "relpath":
		base, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		target, err := asString(args[1], line)
		if err != nil {
			return Value{}, err
		}
		rel, rerr := filepath.Rel(base, target)
		if rerr != nil {
			return Value{}, avonerr.NewFileError(line, rerr.Error())
		}
		return Str(rel), nil
	case "json_parse":
		s, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		var decoded interface{}
		if jerr := json.Unmarshal([]byte(s), &decoded); jerr != nil {
			return Value{}, avonerr.NewFileError(line, fmt.Sprintf("json_parse: %s", jerr.Error()))
		}
		return fromGo(decoded), nil
	case "yaml_parse":
		s, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		var decoded interface{}
		if yerr := yaml.Unmarshal([]byte(s), &decoded); yerr != nil {
			return Value{}, avonerr.NewFileError(line, fmt.Sprintf("yaml_parse: %s", yerr.Error()))
		}
		return fromGo(normalizeYAML(decoded)), nil
	case "toml_parse":
		s, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		var decoded map[string]interface{}
		if _, terr := toml.Decode(s, &decoded); terr != nil {
			return Value{}, avonerr.NewFileError(line, fmt.Sprintf("toml_parse: %s", terr.Error()))
		}
		return fromGo(decoded), nil
	case "ini_parse":
		s, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		return iniParse(s, line)
	case "csv_parse":
		return csvParse(args, line)
	case "xml_parse":
		s, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		return xmlParse(s, line)
	case "fill_template":
		return fillTemplate(args, line)
	default:
		return Value{}, avonerr.Newf(line, "unimplemented file/io builtin %q", name)
	}
}

// validatedPath implements spec.md §4.6: "reject any path containing
// '..'; accept string or Path values". Component-wise, matching
// original_source/src/eval/builtins/file_io.rs (a literal ".." path
// segment is rejected even without surrounding separators).
func validatedPath(v Value, line int) (string, error) {
	s, err := asString(v, line)
	if err != nil {
		return "", err
	}
	for _, seg := range strings.Split(filepath.ToSlash(s), "/") {
		if seg == ".." {
			return "", avonerr.NewFileError(line, fmt.Sprintf("path %q must not contain a '..' segment", s))
		}
	}
	return s, nil
}

func readFileValue(v Value, line int) (Value, error) {
	p, err := validatedPath(v, line)
	if err != nil {
		return Value{}, err
	}
	data, rerr := os.ReadFile(p)
	if rerr != nil {
		return Value{}, avonerr.NewFileError(line, rerr.Error())
	}
	return Str(string(data)), nil
}

func readLines(v Value, line int) (Value, error) {
	str, err := readFileValue(v, line)
	if err != nil {
		return Value{}, err
	}
	lines := strings.Split(str.Str, "\n")
	out := make([]Value, len(lines))
	for i, l := range lines {
		out[i] = Str(l)
	}
	return List(out), nil
}

// walkDir implements spec.md §4.6 / §9: DFS, returns every entry under
// the root including directories, with no filter flag.
func walkDir(v Value, line int) (Value, error) {
	root, err := validatedPath(v, line)
	if err != nil {
		return Value{}, err
	}
	var out []Value
	werr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		out = append(out, Str(path))
		return nil
	})
	if werr != nil {
		return Value{}, avonerr.NewFileError(line, werr.Error())
	}
	return List(out), nil
}

func globPattern(v Value, line int) (Value, error) {
	pat, err := asString(v, line)
	if err != nil {
		return Value{}, err
	}
	matches, gerr := filepath.Glob(pat)
	if gerr != nil {
		return Value{}, avonerr.NewFileError(line, gerr.Error())
	}
	out := make([]Value, len(matches))
	for i, m := range matches {
		out[i] = Str(m)
	}
	return List(out), nil
}

// builtinImport re-evaluates an Avon source from scratch (spec.md §4.6),
// in a fresh top-level environment (its own InitialEnv, not the
// caller's), matching the "module system beyond a file-level import
// builtin that re-evaluates a source from scratch" constraint in §1.
func builtinImport(v Value, line int) (Value, error) {
	p, err := validatedPath(v, line)
	if err != nil {
		return Value{}, err
	}
	data, rerr := os.ReadFile(p)
	if rerr != nil {
		return Value{}, avonerr.NewFileError(line, rerr.Error())
	}
	toks, lerr := lexer.Tokenize(string(data))
	if lerr != nil {
		return Value{}, avonerr.NewFileError(line, fmt.Sprintf("import %q: %s", p, lerr.Error()))
	}
	prog, perr := parser.Parse(toks)
	if perr != nil {
		return Value{}, avonerr.NewFileError(line, fmt.Sprintf("import %q: %s", p, perr.Error()))
	}
	env := InitialEnv(currentOS(), nil)
	result, eerr := Eval(prog, env)
	if eerr != nil {
		return Value{}, eerr
	}
	return result, nil
}

func currentOS() string {
	return runtime.GOOS
}

func csvParse(args []Value, line int) (Value, error) {
	s, err := asString(args[0], line)
	if err != nil {
		return Value{}, err
	}
	headers := false
	if len(args) > 1 && args[1].Kind == KindBool {
		headers = args[1].Bool
	}
	r := csv.NewReader(strings.NewReader(s))
	records, cerr := r.ReadAll()
	if cerr != nil {
		return Value{}, avonerr.NewFileError(line, fmt.Sprintf("csv_parse: %s", cerr.Error()))
	}
	if !headers {
		out := make([]Value, len(records))
		for i, row := range records {
			rowVals := make([]Value, len(row))
			for j, cell := range row {
				rowVals[j] = Str(cell)
			}
			out[i] = List(rowVals)
		}
		return List(out), nil
	}
	if len(records) == 0 {
		return List(nil), nil
	}
	head := records[0]
	out := make([]Value, 0, len(records)-1)
	for _, row := range records[1:] {
		m := make(map[string]Value, len(head))
		for i, col := range head {
			if i < len(row) {
				m[col] = Str(row[i])
			} else {
				m[col] = Str("")
			}
		}
		out = append(out, Dict(m))
	}
	return List(out), nil
}

// iniParse maps every section (including the implicit DEFAULT section)
// to a Dict of its keys, via gopkg.in/ini.v1 rather than a hand-rolled
// INI scanner.
func iniParse(s string, line int) (Value, error) {
	f, ferr := ini.Load([]byte(s))
	if ferr != nil {
		return Value{}, avonerr.NewFileError(line, fmt.Sprintf("ini_parse: %s", ferr.Error()))
	}
	out := make(map[string]Value, len(f.Sections()))
	for _, sec := range f.Sections() {
		keys := sec.Keys()
		m := make(map[string]Value, len(keys))
		for _, k := range keys {
			m[k.Name()] = Str(k.Value())
		}
		out[sec.Name()] = Dict(m)
	}
	return Dict(out), nil
}

// xmlParse decodes the document's root element into a generic value;
// encoding/xml has no built-in map[string]interface{} decode mode the way
// encoding/json does. The root's own tag is not kept: an element with
// child elements decodes to a Dict keyed by child tag name (repeated child
// tags collapse into a List), and a leaf element decodes to a String of its
// trimmed character data. Text mixed in beside child elements, and all
// attributes, are dropped.
func xmlParse(s string, line int) (Value, error) {
	dec := xml.NewDecoder(bytes.NewReader([]byte(s)))
	for {
		tok, err := dec.Token()
		if err != nil {
			return Str(""), nil
		}
		if _, ok := tok.(xml.StartElement); ok {
			return decodeXMLElement(dec, line)
		}
	}
}

func decodeXMLElement(dec *xml.Decoder, line int) (Value, error) {
	children := make(map[string][]Value)
	var text strings.Builder
	for {
		tok, terr := dec.Token()
		if terr != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			childVal, cerr := decodeXMLElement(dec, line)
			if cerr != nil {
				return Value{}, cerr
			}
			children[t.Name.Local] = append(children[t.Name.Local], childVal)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if len(children) == 0 {
				return Str(strings.TrimSpace(text.String())), nil
			}
			m := make(map[string]Value, len(children))
			for k, vs := range children {
				if len(vs) == 1 {
					m[k] = vs[0]
				} else {
					m[k] = List(vs)
				}
			}
			return Dict(m), nil
		}
	}
	if len(children) == 0 {
		return Str(strings.TrimSpace(text.String())), nil
	}
	m := make(map[string]Value, len(children))
	for k, vs := range children {
		if len(vs) == 1 {
			m[k] = vs[0]
		} else {
			m[k] = List(vs)
		}
	}
	return Dict(m), nil
}

// fillTemplate implements spec.md §4.6: string-substitute `{key}`
// placeholders from a dict or list of pairs.
func fillTemplate(args []Value, line int) (Value, error) {
	s, err := asString(args[0], line)
	if err != nil {
		return Value{}, err
	}
	d, _, derr := dictAndKey(args[1], Str(""), line)
	if derr != nil {
		return Value{}, derr
	}
	out := s
	for k, v := range d {
		out = strings.ReplaceAll(out, "{"+k+"}", ToDisplayString(v, 0, 200, 100))
	}
	return Str(out), nil
}

// fromGo converts a decoded JSON/YAML/TOML Go value (map[string]any,
// []any, string, float64/int, bool, nil) into an Avon Value.
func fromGo(v interface{}) Value {
	switch t := v.(type) {
	case nil:
		return None()
	case bool:
		return Bool(t)
	case string:
		return Str(t)
	case int:
		return Int(int64(t))
	case int64:
		return Int(t)
	case float64:
		if t == float64(int64(t)) {
			return Int(int64(t))
		}
		return Float(t)
	case []interface{}:
		out := make([]Value, len(t))
		for i, e := range t {
			out[i] = fromGo(e)
		}
		return List(out)
	case map[string]interface{}:
		out := make(map[string]Value, len(t))
		for k, e := range t {
			out[k] = fromGo(e)
		}
		return Dict(out)
	default:
		return Str(fmt.Sprintf("%v", t))
	}
}

// normalizeYAML recursively converts yaml.v3's map[string]interface{}
// (already produced when unmarshaling into an interface{} target) into
// the same shape json decodes to, collapsing any map[interface{}]interface{}
// that a looser YAML decode might still produce.
func normalizeYAML(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = normalizeYAML(e)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = normalizeYAML(e)
		}
		return out
	default:
		return t
	}
}

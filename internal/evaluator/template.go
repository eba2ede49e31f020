package evaluator

import (
	"strings"

	"github.com/pyrotek45/avon/internal/ast"
	"github.com/pyrotek45/avon/internal/avonconfig"
	"github.com/pyrotek45/avon/internal/avonerr"
	"github.com/pyrotek45/avon/internal/lexer"
	"github.com/pyrotek45/avon/internal/parser"
)

// parseChunkSource tokenizes and parses one interpolation chunk's raw
// source text, the re-parse spec.md §4.5 requires on every render (and
// once more, eagerly, at construction time for validation).
func parseChunkSource(src string) (ast.Node, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return parser.Parse(toks)
}

// buildTemplateValue implements spec.md §4.4 "Template / Path /
// FileTemplate construction": pre-validate every expression chunk against
// env (tokenize, parse, evaluate), then compute the minimal captured
// symbol table from the chunks' free identifiers, and return the lazy
// value carrying only that minimal table.
func buildTemplateValue(kind Kind, chunks []ast.Chunk, env *Env, s *state, line int) (Value, error) {
	if len(chunks) > avonconfig.MaxTemplateChunks {
		return Value{}, avonerr.NewBoundExceeded(line, "template literal exceeds max chunk count")
	}
	free := make(map[string]bool)
	for _, c := range chunks {
		if !c.IsExpr {
			continue
		}
		node, err := parseChunkSource(c.Text)
		if err != nil {
			return Value{}, avonerr.Newf(c.Line, "invalid interpolation expression: %s", err.Error())
		}
		if _, err := eval(node, env, s); err != nil {
			return Value{}, err
		}
		freeIdentifiers(node, map[string]bool{}, free)
	}
	captured := NewEnv()
	for name := range free {
		if v, ok := env.Get(name); ok {
			if err := captured.Insert(name, v); err != nil {
				return Value{}, err
			}
		}
	}
	if captured.Len() > avonconfig.MaxTemplateCaptureSize {
		return Value{}, avonerr.NewBoundExceeded(line, "template captured symbol table exceeds max size")
	}
	return Value{Kind: kind, Chunks: chunks, Captured: captured}, nil
}

func evalTemplate(n *ast.Template, env *Env, s *state) (Value, error) {
	return buildTemplateValue(KindTemplate, n.Chunks, env, s, n.Line())
}

func evalPath(n *ast.Path, env *Env, s *state) (Value, error) {
	return buildTemplateValue(KindPath, n.Chunks, env, s, n.Line())
}

func evalFileTemplate(n *ast.FileTemplate, env *Env, s *state) (Value, error) {
	pathVal, err := buildTemplateValue(KindPath, n.PathExpr.Chunks, env, s, n.PathExpr.Line())
	if err != nil {
		return Value{}, err
	}
	bodyVal, err := buildTemplateValue(KindTemplate, n.BodyTmpl.Chunks, env, s, n.BodyTmpl.Line())
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: KindFileTemplate, FilePath: &pathVal, FileBody: &bodyVal}, nil
}

// RenderChunks implements spec.md §4.5: render a chunk sequence to a
// String, re-tokenizing/re-parsing/re-evaluating every Expr chunk against
// its own captured environment (never the caller's), incrementing depth
// by one per render.
func RenderChunks(chunks []ast.Chunk, captured *Env, depth, maxDepth int) (string, error) {
	if depth > maxDepth {
		return "", avonerr.NewBoundExceeded(0, "template render depth exceeds max")
	}
	var b strings.Builder
	iterations := 0
	for _, c := range chunks {
		iterations++
		if iterations > avonconfig.MaxTemplateIterations {
			return "", avonerr.NewBoundExceeded(c.Line, "template render exceeds max iterations")
		}
		if !c.IsExpr {
			b.WriteString(c.Text)
			continue
		}
		node, err := parseChunkSource(c.Text)
		if err != nil {
			return "", avonerr.Newf(c.Line, "invalid interpolation expression: %s", err.Error())
		}
		sub := &state{depth: depth + 1}
		val, err := eval(node, captured, sub)
		if err != nil {
			return "", err
		}
		b.WriteString(renderValueForSplice(val, &b, depth, maxDepth))
	}
	return b.String(), nil
}

// renderValueForSplice implements the "list splice" rule of spec.md §4.5:
// a List interpolation joins its stringified items with a newline, and
// every subsequent line is reindented to the current output's trailing
// indent prefix (the run of spaces/tabs after the last '\n' already
// written). Everything else uses the plain recursive stringifier.
func renderValueForSplice(v Value, out *strings.Builder, depth, maxDepth int) string {
	if v.Kind != KindList {
		return ToDisplayString(v, 0, avonconfig.MaxStringifyDepth, avonconfig.MaxDictStringifyEntries)
	}
	indent := trailingIndent(out.String())
	parts := make([]string, len(v.List))
	for i, e := range v.List {
		parts[i] = ToDisplayString(e, 0, avonconfig.MaxStringifyDepth, avonconfig.MaxDictStringifyEntries)
	}
	return strings.Join(parts, "\n"+indent)
}

func trailingIndent(s string) string {
	nl := strings.LastIndexByte(s, '\n')
	line := s[nl+1:]
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}

// Dedent implements spec.md §4.5 "Dedent": trim leading/trailing
// all-whitespace lines, then strip the first non-blank line's leading
// indent from every line that has at least that much leading whitespace.
func Dedent(s string) string {
	lines := strings.Split(s, "\n")

	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	if start >= end {
		return ""
	}
	lines = lines[start:end]

	baseline := leadingWhitespace(lines[0])
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		ws := leadingWhitespace(line)
		if len(ws) >= len(baseline) && strings.HasPrefix(line, baseline) {
			lines[i] = line[len(baseline):]
		}
	}
	return strings.Join(lines, "\n")
}

func leadingWhitespace(line string) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}

// RenderTemplateValue renders and dedents a Template value end to end,
// the operation the collector and to_string both need.
func RenderTemplateValue(v Value) (string, error) {
	rendered, err := RenderChunks(v.Chunks, v.Captured, 0, avonconfig.MaxTemplateDepth)
	if err != nil {
		return "", err
	}
	return Dedent(rendered), nil
}

// RenderPathValue renders a Path value without dedenting (paths are
// single-line by construction).
func RenderPathValue(v Value) (string, error) {
	return RenderChunks(v.Chunks, v.Captured, 0, avonconfig.MaxTemplateDepth)
}

package evaluator

import "github.com/pyrotek45/avon/internal/ast"

// freeIdentifiers collects every identifier referenced by node that is not
// bound by an enclosing let/lambda within node itself (spec.md §3.1
// "Lifecycle & ownership": templates capture "exactly the identifiers
// referenced by their interpolation expressions"). bound accumulates the
// names currently shadowed as the walk descends; out accumulates results.
func freeIdentifiers(node ast.Node, bound map[string]bool, out map[string]bool) {
	if node == nil {
		return
	}
	switch n := node.(type) {
	case *ast.None, *ast.Bool, *ast.Number, *ast.String:
		// no identifiers
	case *ast.Identifier:
		if !bound[n.Name] {
			out[n.Name] = true
		}
	case *ast.Let:
		freeIdentifiers(n.Value, bound, out)
		inner := cloneBound(bound)
		inner[n.Name] = true
		freeIdentifiers(n.Body, inner, out)
	case *ast.Function:
		if n.Default != nil {
			freeIdentifiers(n.Default, bound, out)
		}
		inner := cloneBound(bound)
		inner[n.Param] = true
		freeIdentifiers(n.Body, inner, out)
	case *ast.Application:
		freeIdentifiers(n.Fn, bound, out)
		freeIdentifiers(n.Arg, bound, out)
	case *ast.Conditional:
		freeIdentifiers(n.Cond, bound, out)
		freeIdentifiers(n.Then, bound, out)
		freeIdentifiers(n.Else, bound, out)
	case *ast.Binary:
		freeIdentifiers(n.Left, bound, out)
		freeIdentifiers(n.Right, bound, out)
	case *ast.Member:
		freeIdentifiers(n.Object, bound, out)
	case *ast.Pipeline:
		freeIdentifiers(n.Left, bound, out)
		freeIdentifiers(n.Right, bound, out)
	case *ast.List:
		for _, e := range n.Elements {
			freeIdentifiers(e, bound, out)
		}
	case *ast.Range:
		freeIdentifiers(n.Start, bound, out)
		if n.Step != nil {
			freeIdentifiers(n.Step, bound, out)
		}
		freeIdentifiers(n.End, bound, out)
	case *ast.Dict:
		for _, p := range n.Pairs {
			freeIdentifiers(p.Value, bound, out)
		}
	case *ast.Template, *ast.Path:
		for _, c := range chunksOf(n) {
			if !c.IsExpr {
				continue
			}
			freeIdentifiersInSource(c.Text, bound, out)
		}
	case *ast.FileTemplate:
		freeIdentifiers(n.PathExpr, bound, out)
		freeIdentifiers(n.BodyTmpl, bound, out)
	}
}

func chunksOf(n ast.Node) []ast.Chunk {
	switch v := n.(type) {
	case *ast.Template:
		return v.Chunks
	case *ast.Path:
		return v.Chunks
	default:
		return nil
	}
}

// freeIdentifiersInSource tokenizes+parses an interpolation chunk's raw
// source and folds its free identifiers into out. A chunk that fails to
// parse contributes nothing here; the caller's pre-validation pass (see
// evalTemplate) is what actually surfaces such errors to the user.
func freeIdentifiersInSource(src string, bound map[string]bool, out map[string]bool) {
	node, err := parseChunkSource(src)
	if err != nil {
		return
	}
	freeIdentifiers(node, bound, out)
}

func cloneBound(bound map[string]bool) map[string]bool {
	out := make(map[string]bool, len(bound)+1)
	for k := range bound {
		out[k] = true
	}
	return out
}

package evaluator

import "github.com/pyrotek45/avon/internal/avonerr"

// FilePair is one rendered (path, content) output, spec.md §4.7 /
// §6 "collect_file_templates".
type FilePair struct {
	Path    string
	Content string
}

// CollectFileTemplates walks v and renders every FileTemplate reachable
// through nested Lists into (path, content) pairs (spec.md §4.7). A
// top-level result that is still an unapplied Function (spec.md §8 S6's
// `\name ? "alice" \age ? "30" @...`) is first resolved via ResolveDefaults,
// since the driver invokes this on the program's raw result value.
func CollectFileTemplates(v Value) ([]FilePair, error) {
	resolved, err := ResolveDefaults(v, 0)
	if err != nil {
		return nil, err
	}
	var out []FilePair
	if err := collect(resolved, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func collect(v Value, out *[]FilePair) error {
	switch v.Kind {
	case KindFileTemplate:
		path, err := RenderPathValue(*v.FilePath)
		if err != nil {
			return err
		}
		content, err := RenderTemplateValue(*v.FileBody)
		if err != nil {
			return err
		}
		*out = append(*out, FilePair{Path: path, Content: content})
		return nil
	case KindList:
		for _, e := range v.List {
			if e.Kind == KindTemplate || e.Kind == KindPath {
				return avonerr.Newf(0, "a bare %s inside a list cannot be written; wrap it as @path {\"...\"}", e.Kind)
			}
			if e.Kind != KindFileTemplate && e.Kind != KindList {
				continue
			}
			if err := collect(e, out); err != nil {
				return err
			}
		}
		return nil
	default:
		return avonerr.Newf(0, "top-level value is not a file template or list thereof (got %s)", v.Kind)
	}
}

package extractor

import (
	"github.com/litedoc/litedoc/extractor/models"
)

// branchFrame is one open conditional directive on the resolution stack.
type branchFrame struct {
	kept     bool
	seenElse bool
	line     int
}

// ResolveConditionals removes directive segments and drops every segment
// belonging to an inactive branch. symbols is the documentation build's
// assumed configuration; nested conditionals compose by logical AND
// across the stack.
//
// Unknown symbols return a *models.ConfigError, which is fatal to the
// whole run; unbalanced directives return a *models.StructuralError,
// which only skips this file.
func ResolveConditionals(path string, segs []models.Segment, symbols map[string]bool) ([]models.Segment, error) {
	var stack []branchFrame
	out := make([]models.Segment, 0, len(segs))

	allKept := func() bool {
		for _, f := range stack {
			if !f.kept {
				return false
			}
		}
		return true
	}

	for _, seg := range segs {
		if seg.Kind != models.KindDirective {
			if allKept() {
				out = append(out, seg)
			}
			continue
		}

		switch seg.Directive {
		case models.DirectiveIf:
			val, ok := symbols[seg.Symbol]
			if !ok {
				return nil, models.ConfigErrorf("%s:%d: condition symbol %q is not defined in the symbol table", path, seg.StartLine, seg.Symbol)
			}
			if seg.Negated {
				val = !val
			}
			stack = append(stack, branchFrame{kept: val, line: seg.StartLine})

		case models.DirectiveElse:
			if len(stack) == 0 {
				return nil, &models.StructuralError{
					Path: path, Line: seg.StartLine,
					Reason: "#else without a matching #if",
				}
			}
			top := &stack[len(stack)-1]
			if top.seenElse {
				return nil, &models.StructuralError{
					Path: path, Line: seg.StartLine,
					Reason: "duplicate #else in one conditional region",
				}
			}
			top.kept = !top.kept
			top.seenElse = true

		case models.DirectiveEnd:
			if len(stack) == 0 {
				return nil, &models.StructuralError{
					Path: path, Line: seg.StartLine,
					Reason: "#endif without a matching #if",
				}
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 0 {
		return nil, &models.StructuralError{
			Path: path, Line: stack[len(stack)-1].line,
			Reason: "#if without a matching #endif",
		}
	}

	return out, nil
}

package extractor

import (
	"regexp"
	"strings"

	"github.com/litedoc/litedoc/config"
	"github.com/litedoc/litedoc/extractor/models"
)

var directiveRegex = regexp.MustCompile(`^\s*#(if|else|endif)\b\s*(.*)$`)
var conditionRegex = regexp.MustCompile(`^(!?)(\w+)\s*$`)

// Scanner turns raw file text into an ordered sequence of typed segments
// covering the entire input with no gaps or overlaps. It is stateless
// across files; one Scan call owns all per-file state.
type Scanner struct {
	docOpen   string // block-comment opener carrying the doc marker, e.g. "/*md"
	langOpen  string // language tag prefix inside a doc block, e.g. "[source:"
	hide      string
	show      string
	hideScope string
}

func NewScanner(cfg *config.Config) *Scanner {
	return &Scanner{
		docOpen:   "/*" + cfg.Markers.Doc,
		langOpen:  "[" + cfg.Markers.Language + ":",
		hide:      cfg.Markers.Hide,
		show:      cfg.Markers.Show,
		hideScope: cfg.HideScope,
	}
}

// Scan produces the segment sequence for one file. The Raw lines of the
// returned segments, concatenated in order, reproduce the input exactly.
func (s *Scanner) Scan(path, text string) ([]models.Segment, error) {
	lines := strings.Split(text, "\n")
	// A trailing newline yields one empty trailing element; it is not a line.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var segs []models.Segment

	var code *models.Segment   // open code or hidden run, nil if none
	hidden := false            // inside a hide region
	hideDepth := 0             // brace depth at the hide marker (block scope)
	hideLine := 0              // line of the open hide marker, for errors
	depth := 0                 // brace depth across code lines

	flushCode := func() {
		if code != nil {
			segs = append(segs, *code)
			code = nil
		}
	}
	appendLine := func(kind models.SegmentKind, n int, raw string) {
		if code != nil && code.Kind != kind {
			flushCode()
		}
		if code == nil {
			code = &models.Segment{Kind: kind, StartLine: n}
		}
		code.Raw = append(code.Raw, raw)
		code.Lines = append(code.Lines, raw)
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)

		// Conditional directives are recognized everywhere, including
		// inside hide regions, so the directive stack stays balanced.
		if m := directiveRegex.FindStringSubmatch(line); m != nil {
			flushCode()
			seg, err := s.parseDirective(path, lineNo, line, m)
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
			continue
		}

		if hidden {
			// A directive may have flushed the open hidden run.
			if code == nil {
				code = &models.Segment{Kind: models.KindHidden, StartLine: lineNo}
			}
			if trimmed == s.show {
				code.Raw = append(code.Raw, line)
				flushCode()
				hidden = false
				continue
			}
			if trimmed == s.hide {
				return nil, &models.StructuralError{
					Path: path, Line: lineNo,
					Reason: "hide marker inside an open hide region",
				}
			}
			if s.hideScope == "block" {
				next := depth + braceDelta(trimmed)
				if next < hideDepth {
					// The closing brace belongs to the enclosing
					// visible block; the hide region ended before it.
					flushCode()
					hidden = false
					depth = next
					appendLine(models.KindCode, lineNo, line)
					continue
				}
				depth = next
			}
			code.Raw = append(code.Raw, line)
			code.Lines = append(code.Lines, line)
			continue
		}

		if trimmed == s.hide {
			flushCode()
			hidden = true
			hideDepth = depth
			hideLine = lineNo
			code = &models.Segment{Kind: models.KindHidden, StartLine: lineNo}
			code.Raw = append(code.Raw, line)
			continue
		}
		if trimmed == s.show {
			return nil, &models.StructuralError{
				Path: path, Line: lineNo,
				Reason: "show marker without a matching hide marker",
			}
		}

		if isDocOpener(trimmed, s.docOpen) {
			flushCode()
			seg, consumed, err := s.scanDocBlock(path, lines, i)
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
			i += consumed - 1
			continue
		}

		depth += braceDelta(trimmed)
		appendLine(models.KindCode, lineNo, line)
	}

	if hidden {
		if s.hideScope == "explicit" {
			return nil, &models.StructuralError{
				Path: path, Line: hideLine,
				Reason: "hide marker without a matching show marker",
			}
		}
		// Block scope at depth zero extends to end of file.
		flushCode()
	}
	flushCode()

	return segs, nil
}

// parseDirective classifies one conditional-compilation line.
func (s *Scanner) parseDirective(path string, lineNo int, raw string, m []string) (models.Segment, error) {
	seg := models.Segment{
		Kind:      models.KindDirective,
		StartLine: lineNo,
		Raw:       []string{raw},
	}
	switch m[1] {
	case "if":
		cond := conditionRegex.FindStringSubmatch(strings.TrimSpace(m[2]))
		if cond == nil {
			return seg, &models.StructuralError{
				Path: path, Line: lineNo,
				Reason: "unsupported condition expression: " + strings.TrimSpace(m[2]),
			}
		}
		seg.Directive = models.DirectiveIf
		seg.Negated = cond[1] == "!"
		seg.Symbol = cond[2]
	case "else":
		seg.Directive = models.DirectiveElse
	case "endif":
		seg.Directive = models.DirectiveEnd
	}
	return seg, nil
}

// scanDocBlock consumes one documentation block starting at lines[start]
// and returns the prose segment plus the number of lines consumed.
func (s *Scanner) scanDocBlock(path string, lines []string, start int) (models.Segment, int, error) {
	seg := models.Segment{Kind: models.KindProse, StartLine: start + 1}

	first := lines[start]
	seg.Raw = append(seg.Raw, first)
	rest := strings.TrimSpace(first)
	rest = strings.TrimPrefix(rest, s.docOpen)

	if idx := strings.Index(rest, "*/"); idx >= 0 {
		// Single-line form, possibly with an empty body.
		body := strings.TrimSpace(rest[:idx])
		if body != "" {
			s.addBodyLine(&seg, body)
		}
		return seg, 1, nil
	}
	if rest = strings.TrimSpace(rest); rest != "" {
		s.addBodyLine(&seg, rest)
	}

	for i := start + 1; i < len(lines); i++ {
		line := lines[i]
		seg.Raw = append(seg.Raw, line)
		trimmed := strings.TrimSpace(line)
		if idx := strings.Index(trimmed, "*/"); idx >= 0 {
			tail := strings.TrimSpace(trimmed[:idx])
			if tail != "" {
				s.addBodyLine(&seg, stripLeader(tail))
			}
			return seg, i - start + 1, nil
		}
		s.addBodyLine(&seg, stripLeader(trimmed))
	}

	return seg, 0, &models.StructuralError{
		Path: path, Line: start + 1,
		Reason: "unterminated documentation block",
	}
}

// addBodyLine appends one prose body line, peeling off a language tag
// when the line is exactly a [source:NAME] declaration.
func (s *Scanner) addBodyLine(seg *models.Segment, line string) {
	if strings.HasPrefix(line, s.langOpen) && strings.HasSuffix(line, "]") {
		name := strings.TrimSpace(line[len(s.langOpen) : len(line)-1])
		if name != "" {
			seg.Lang = name
			return
		}
	}
	seg.Lines = append(seg.Lines, line)
}

// isDocOpener requires a token boundary after the doc marker so a
// marker "md" does not claim comments like "/*mdx".
func isDocOpener(trimmed, docOpen string) bool {
	if !strings.HasPrefix(trimmed, docOpen) {
		return false
	}
	rest := trimmed[len(docOpen):]
	return rest == "" || strings.HasPrefix(rest, " ") || strings.HasPrefix(rest, "\t") || strings.HasPrefix(rest, "*/")
}

// stripLeader removes the optional decorative comment leader from a doc
// block body line: a single "*" with one optional following space.
func stripLeader(trimmed string) string {
	if trimmed == "*" {
		return ""
	}
	if strings.HasPrefix(trimmed, "* ") {
		return trimmed[2:]
	}
	if strings.HasPrefix(trimmed, "*") && !strings.HasPrefix(trimmed, "*/") {
		return trimmed[1:]
	}
	return trimmed
}

// braceDelta tracks structural nesting for the implicit hide scope.
// Braces inside string literals or comments are not distinguished;
// the annotation syntax only needs depth relative to the hide marker.
func braceDelta(trimmed string) int {
	d := 0
	for _, r := range trimmed {
		switch r {
		case '{':
			d++
		case '}':
			d--
		}
	}
	return d
}

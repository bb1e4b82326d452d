package models

// SegmentKind classifies a contiguous span of source text.
type SegmentKind int

const (
	KindProse SegmentKind = iota
	KindCode
	KindDirective
	KindHidden
)

func (k SegmentKind) String() string {
	switch k {
	case KindProse:
		return "prose"
	case KindCode:
		return "code"
	case KindDirective:
		return "directive"
	case KindHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// DirectiveKind distinguishes the conditional-compilation directive forms.
type DirectiveKind int

const (
	DirectiveNone DirectiveKind = iota
	DirectiveIf
	DirectiveElse
	DirectiveEnd
)

// Segment is a contiguous run of source lines tagged with a kind.
// Raw holds the original lines verbatim, including consumed marker and
// directive lines, so that the unfiltered sequence reproduces the input
// exactly. Lines holds the content the rest of the pipeline works with:
// stripped prose body lines for KindProse, source lines for KindCode
// and KindHidden, and nothing for KindDirective.
type Segment struct {
	Kind      SegmentKind
	StartLine int // 1-based line of the first raw line
	Raw       []string
	Lines     []string

	// Prose-only fields.
	Lang string // language tag declared inside this prose block, "" if none

	// Directive-only fields.
	Directive DirectiveKind
	Symbol    string // condition symbol, without negation
	Negated   bool
}

// IsEmptyProse reports whether the segment is a prose block with no body
// content. Empty prose blocks act as separators between code samples and
// still force document production for the file.
func (s *Segment) IsEmptyProse() bool {
	if s.Kind != KindProse {
		return false
	}
	for _, l := range s.Lines {
		if l != "" {
			return false
		}
	}
	return true
}

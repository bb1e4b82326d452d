package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/litedoc/litedoc/config"
	"github.com/litedoc/litedoc/extractor/models"
)

var (
	calloutMarkerRegex = regexp.MustCompile(`<(\d+)>`)
	numberedItemRegex  = regexp.MustCompile(`^(\d+)\.\s+(.*)$`)
	bulletItemRegex    = regexp.MustCompile(`^[-*]\s+(.*)$`)
)

// CalloutResolver matches angle-bracketed numeric markers in code blocks
// to the explanation list in the following prose segment and rewrites
// both sides into the output format's callout convention.
type CalloutResolver struct {
	codeFormat string // Sprintf pattern for the code-side anchor, e.g. "(%d)"
}

func NewCalloutResolver(cfg *config.Config) *CalloutResolver {
	return &CalloutResolver{codeFormat: cfg.Format.CalloutCode}
}

// marker is one occurrence of <N> inside a code run.
type marker struct {
	number  int
	segIdx  int
	lineIdx int
}

// calloutList is the candidate explanation list inside a prose segment.
type calloutList struct {
	segIdx   int
	start    int // first list line index in the prose body
	items    []string
	numbers  []int // literal item numbers, nil for an unnumbered list
	numbered bool
}

// Resolve rewrites callouts in place over the filtered segment sequence.
// Matching is literal by number when the prose list is numbered, and
// positional (marker N against the N-th item) when it is not. An
// unmatched marker stays literal and produces a warning; an unmatched
// item is ordinary prose and never an error.
func (r *CalloutResolver) Resolve(path string, segs []models.Segment) []models.Warning {
	var warnings []models.Warning

	i := 0
	for i < len(segs) {
		if segs[i].Kind != models.KindCode {
			i++
			continue
		}
		// Maximal contiguous code run; markers are scoped to it.
		runStart := i
		for i < len(segs) && segs[i].Kind == models.KindCode {
			i++
		}

		markers := collectMarkers(segs, runStart, i)
		if len(markers) == 0 {
			continue
		}

		list := findCalloutList(segs, i)
		matched := r.apply(path, segs, markers, list, &warnings)

		// A prose list is only a callout target when at least one
		// marker resolved into it; otherwise leave it untouched.
		if list != nil && matched > 0 {
			renderList(segs, markers, list)
		}
	}

	return warnings
}

func collectMarkers(segs []models.Segment, from, to int) []marker {
	var out []marker
	for si := from; si < to; si++ {
		for li, line := range segs[si].Lines {
			for _, m := range calloutMarkerRegex.FindAllStringSubmatch(line, -1) {
				n, _ := strconv.Atoi(m[1])
				out = append(out, marker{number: n, segIdx: si, lineIdx: li})
			}
		}
	}
	return out
}

// findCalloutList locates the first list run in the next prose segment
// in document order, or nil when there is none.
func findCalloutList(segs []models.Segment, after int) *calloutList {
	for si := after; si < len(segs); si++ {
		if segs[si].Kind != models.KindProse {
			return nil
		}
		if segs[si].IsEmptyProse() {
			// An empty prose block is a separator, not a target,
			// but prose further on is no longer adjacent.
			return nil
		}
		list := &calloutList{segIdx: si, start: -1}
		for li, line := range segs[si].Lines {
			if m := numberedItemRegex.FindStringSubmatch(line); m != nil {
				if list.start == -1 {
					list.start = li
					list.numbered = true
				} else if !list.numbered {
					break
				}
				n, _ := strconv.Atoi(m[1])
				list.items = append(list.items, m[2])
				list.numbers = append(list.numbers, n)
				continue
			}
			if m := bulletItemRegex.FindStringSubmatch(line); m != nil {
				if list.start == -1 {
					list.start = li
					list.numbered = false
				} else if list.numbered {
					break
				}
				list.items = append(list.items, m[1])
				continue
			}
			if list.start != -1 {
				break
			}
		}
		if list.start == -1 {
			return nil
		}
		return list
	}
	return nil
}

// apply rewrites matched markers into the code-side anchor format and
// records warnings for the rest. Returns the number of matched markers.
func (r *CalloutResolver) apply(path string, segs []models.Segment, markers []marker, list *calloutList, warnings *[]models.Warning) int {
	matched := 0
	for _, mk := range markers {
		if itemFor(mk, list) >= 0 {
			seg := &segs[mk.segIdx]
			old := fmt.Sprintf("<%d>", mk.number)
			anchor := fmt.Sprintf(r.codeFormat, mk.number)
			seg.Lines[mk.lineIdx] = strings.Replace(seg.Lines[mk.lineIdx], old, anchor, 1)
			matched++
			continue
		}
		seg := &segs[mk.segIdx]
		*warnings = append(*warnings, models.Warning{
			Path:    path,
			Line:    seg.StartLine + mk.lineIdx,
			Message: fmt.Sprintf("callout marker <%d> has no matching explanation item", mk.number),
		})
	}
	return matched
}

// itemFor returns the explanation item index for a marker, or -1.
func itemFor(mk marker, list *calloutList) int {
	if list == nil {
		return -1
	}
	if list.numbered {
		for idx, n := range list.numbers {
			if n == mk.number {
				return idx
			}
		}
		return -1
	}
	if mk.number >= 1 && mk.number <= len(list.items) {
		return mk.number - 1
	}
	return -1
}

// renderList rewrites the matched explanation items as ordered items
// keyed by their marker numbers, the prose-side half of the anchor pair.
func renderList(segs []models.Segment, markers []marker, list *calloutList) {
	matchedIdx := make(map[int]int) // item index -> marker number
	for _, mk := range markers {
		if idx := itemFor(mk, list); idx >= 0 {
			matchedIdx[idx] = mk.number
		}
	}
	seg := &segs[list.segIdx]
	for off, item := range list.items {
		n, ok := matchedIdx[off]
		if !ok {
			continue
		}
		seg.Lines[list.start+off] = fmt.Sprintf("%d. %s", n, item)
	}
}

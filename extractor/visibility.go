package extractor

import (
	"regexp"
	"strings"

	"github.com/litedoc/litedoc/config"
	"github.com/litedoc/litedoc/extractor/models"
)

var attributeLineRegex = regexp.MustCompile(`^\[(\w+)(\(.*\))?\]$`)

// VisibilityFilter removes hidden segments and strips structural noise
// from surviving code: single-token attribute annotation lines and
// trailing comments that mark a line as intentionally non-runnable.
// It never reorders segments.
type VisibilityFilter struct {
	noiseAttributes map[string]bool
	skipComments    []string
}

func NewVisibilityFilter(cfg *config.Config) *VisibilityFilter {
	noise := make(map[string]bool, len(cfg.Markers.NoiseAttributes))
	for _, a := range cfg.Markers.NoiseAttributes {
		noise[a] = true
	}
	return &VisibilityFilter{
		noiseAttributes: noise,
		skipComments:    cfg.Markers.SkipComments,
	}
}

// Filter returns the documentation-facing subset of the sequence. No
// character originating inside a hidden segment survives.
func (f *VisibilityFilter) Filter(segs []models.Segment) []models.Segment {
	out := make([]models.Segment, 0, len(segs))
	for _, seg := range segs {
		switch seg.Kind {
		case models.KindHidden:
			continue
		case models.KindCode:
			cleaned := f.cleanCode(seg)
			if len(cleaned.Lines) == 0 {
				continue
			}
			out = append(out, cleaned)
		default:
			out = append(out, seg)
		}
	}
	return out
}

func (f *VisibilityFilter) cleanCode(seg models.Segment) models.Segment {
	cleaned := seg
	cleaned.Lines = make([]string, 0, len(seg.Lines))
	for _, line := range seg.Lines {
		if f.isNoiseAttribute(line) {
			continue
		}
		cleaned.Lines = append(cleaned.Lines, f.stripSkipComment(line))
	}
	return cleaned
}

// isNoiseAttribute reports whether the line is a lone harness annotation
// like [Fact] or [Theory(...)] from the configured noise set.
func (f *VisibilityFilter) isNoiseAttribute(line string) bool {
	m := attributeLineRegex.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return false
	}
	return f.noiseAttributes[m[1]]
}

// stripSkipComment removes a configured trailing marker comment, keeping
// the code before it intact.
func (f *VisibilityFilter) stripSkipComment(line string) string {
	for _, marker := range f.skipComments {
		idx := strings.LastIndex(line, marker)
		if idx < 0 {
			continue
		}
		// Only strip when nothing but the marker follows.
		if strings.TrimSpace(line[idx+len(marker):]) != "" {
			continue
		}
		return strings.TrimRight(line[:idx], " \t")
	}
	return line
}

package extractor

import (
	"fmt"

	"github.com/litedoc/litedoc/config"
	"github.com/litedoc/litedoc/extractor/models"
	"github.com/litedoc/litedoc/utils"
)

// Extractor runs the per-file pipeline: scan, resolve conditionals,
// filter visibility, resolve callouts, assemble. One Extractor serves a
// whole run; it holds only read-only configuration, so files may be
// processed concurrently.
type Extractor struct {
	cfg      *config.Config
	scanner  *Scanner
	filter   *VisibilityFilter
	callouts *CalloutResolver
}

// NewExtractor initializes a new Extractor for one run's configuration.
func NewExtractor(cfg *config.Config) *Extractor {
	return &Extractor{
		cfg:      cfg,
		scanner:  NewScanner(cfg),
		filter:   NewVisibilityFilter(cfg),
		callouts: NewCalloutResolver(cfg),
	}
}

// Process transforms one source file's text into its document. A nil
// document with nil error means the file has no documentation blocks
// and produces no output. A *models.StructuralError skips the file; a
// *models.ConfigError aborts the run.
func (e *Extractor) Process(relPath, text string) (*models.Document, []models.Warning, error) {
	segs, err := e.scanner.Scan(relPath, text)
	if err != nil {
		return nil, nil, err
	}

	var warnings []models.Warning
	for _, seg := range segs {
		if seg.Kind == models.KindProse && seg.Lang != "" && !utils.KnownLanguage(seg.Lang) {
			warnings = append(warnings, models.Warning{
				Path:    relPath,
				Line:    seg.StartLine,
				Message: fmt.Sprintf("unrecognized language tag %q, emitting verbatim", seg.Lang),
			})
		}
	}

	segs, err = ResolveConditionals(relPath, segs, e.cfg.Symbols)
	if err != nil {
		return nil, warnings, err
	}

	segs = e.filter.Filter(segs)
	warnings = append(warnings, e.callouts.Resolve(relPath, segs)...)

	doc := Assemble(relPath, e.cfg.HostLanguage, segs)
	return doc, warnings, nil
}

package extractor

import (
	"github.com/litedoc/litedoc/extractor/models"
)

// Assemble merges the filtered, resolved segment sequence into a
// document. Contiguous code segments become one fenced block; contiguous
// prose segments become one prose block with their blank-line paragraph
// structure intact. An empty prose segment between two code runs is a
// deliberate separator and survives as a zero-content prose block.
//
// Files with no prose segments produce no document: nil is returned.
func Assemble(relPath, hostLang string, segs []models.Segment) *models.Document {
	hasProse := false
	for _, seg := range segs {
		if seg.Kind == models.KindProse {
			hasProse = true
			break
		}
	}
	if !hasProse {
		return nil
	}

	doc := &models.Document{RelativePath: relPath}
	curLang := "" // tag declared by the prose that opened the current sample

	i := 0
	for i < len(segs) {
		switch segs[i].Kind {
		case models.KindProse:
			var lines []string
			curLang = ""
			first := true
			for i < len(segs) && segs[i].Kind == models.KindProse {
				// Merge only blocks that were adjacent in the
				// source; filtering must not fuse prose that
				// code or hidden regions once separated.
				if !first && !adjacent(&segs[i-1], &segs[i]) {
					break
				}
				if !first && len(segs[i].Lines) > 0 {
					lines = append(lines, "")
				}
				lines = append(lines, segs[i].Lines...)
				if segs[i].Lang != "" {
					curLang = segs[i].Lang
				}
				first = false
				i++
			}
			doc.Blocks = append(doc.Blocks, models.Block{Kind: models.BlockProse, Lines: lines})

		case models.KindCode:
			var lines []string
			for i < len(segs) && segs[i].Kind == models.KindCode {
				lines = append(lines, segs[i].Lines...)
				i++
			}
			lang := curLang
			if lang == "" {
				lang = hostLang
			}
			doc.Blocks = append(doc.Blocks, models.Block{Kind: models.BlockCode, Lang: lang, Lines: lines})

		default:
			// Directive and hidden segments were removed upstream.
			i++
		}
	}

	return doc
}

// adjacent reports whether b immediately followed a in the source text.
func adjacent(a, b *models.Segment) bool {
	return b.StartLine == a.StartLine+len(a.Raw)
}

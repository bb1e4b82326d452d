package models

import "strings"

// BlockKind classifies a rendered output block.
type BlockKind int

const (
	BlockProse BlockKind = iota
	BlockCode
)

// Block is one rendered unit of the output document: either a literal
// prose block or a fenced code block with a declared language tag.
type Block struct {
	Kind  BlockKind
	Lang  string // code blocks only
	Lines []string
}

// Document is the assembled output for one source file. It is produced
// once, written once, and never mutated after assembly.
type Document struct {
	RelativePath string
	Blocks       []Block
}

// Render serializes the document using the given fence string, e.g. "```".
func (d *Document) Render(fence string) string {
	var sb strings.Builder
	for i, b := range d.Blocks {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch b.Kind {
		case BlockProse:
			for _, l := range b.Lines {
				sb.WriteString(l)
				sb.WriteString("\n")
			}
		case BlockCode:
			sb.WriteString(fence)
			sb.WriteString(b.Lang)
			sb.WriteString("\n")
			for _, l := range b.Lines {
				sb.WriteString(l)
				sb.WriteString("\n")
			}
			sb.WriteString(fence)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Callout links a numbered marker on a code line to its explanation item
// in the adjacent prose list.
type Callout struct {
	Number      int
	CodeLine    int // index into the code block's lines
	Explanation string
}

package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// RenderAndPrintMarkdown prints an assembled document to the terminal,
// highlighting fenced code blocks with chroma.
func RenderAndPrintMarkdown(content string, fence string, defaultLang string, theme string) error {
	inCodeBlock := false
	lang := defaultLang

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, fence) {
			inCodeBlock = !inCodeBlock
			if inCodeBlock {
				if tag := strings.TrimPrefix(line, fence); tag != "" {
					lang = tag
				}
			} else {
				lang = defaultLang
			}
			fmt.Println(line)
			continue
		}

		if inCodeBlock {
			if err := quick.Highlight(os.Stdout, line+"\n", lang, "terminal256", theme); err != nil {
				return err
			}
		} else {
			fmt.Println(line)
		}
	}

	return nil
}

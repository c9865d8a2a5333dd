// Package lesson splits generated lesson text into pages for the terminal.
package lesson

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

// PageSize is the default number of characters per page.
const PageSize = 1200

// separators prefer paragraph breaks, then lines, then words.
var separators = []string{"\n\n", "\n", " ", ""}

// Paginate splits text into pages of at most size characters, breaking at
// paragraph boundaries where possible. A size of 0 uses PageSize. Blank
// text yields no pages.
func Paginate(text string, size int) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if size <= 0 {
		size = PageSize
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(size),
		textsplitter.WithChunkOverlap(0),
		textsplitter.WithSeparators(separators),
	)
	chunks, err := splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("paginate lesson: %w", err)
	}

	pages := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if c = strings.TrimSpace(c); c != "" {
			pages = append(pages, c)
		}
	}
	return pages, nil
}

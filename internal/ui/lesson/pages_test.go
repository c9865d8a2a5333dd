package lesson

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPaginate_ShortLessonIsOnePage(t *testing.T) {
	pages, err := Paginate("  A variable names a value.  ", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 || pages[0] != "A variable names a value." {
		t.Errorf("pages = %q", pages)
	}
}

func TestPaginate_Blank(t *testing.T) {
	pages, err := Paginate(" \n\n ", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 0 {
		t.Errorf("expected no pages, got %q", pages)
	}
}

func TestPaginate_SplitsAtParagraphs(t *testing.T) {
	var paras []string
	for i := range 6 {
		paras = append(paras, strings.Repeat("word"+string(rune('a'+i))+" ", 40))
	}
	text := strings.Join(paras, "\n\n")

	pages, err := Paginate(text, 500)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) < 2 {
		t.Fatalf("expected several pages, got %d", len(pages))
	}
	for i, p := range pages {
		if n := utf8.RuneCountInString(p); n > 500 {
			t.Errorf("page %d has %d characters", i, n)
		}
	}

	joined := strings.Join(pages, " ")
	for i := range 6 {
		w := "word" + string(rune('a'+i))
		if !strings.Contains(joined, w) {
			t.Errorf("%s lost during pagination", w)
		}
	}
}

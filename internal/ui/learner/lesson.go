package learner

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/lesson"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// lessonModel pages through one lesson.
type lessonModel struct {
	concept string
	status  string
	pages   []string
	page    int

	width  int
	height int

	done bool
	quit bool
}

func newLessonModel(concept, text, status string) (lessonModel, error) {
	pages, err := lesson.Paginate(text, lesson.PageSize)
	if err != nil {
		return lessonModel{}, err
	}
	if len(pages) == 0 {
		pages = []string{"(This lesson is empty.)"}
	}
	return lessonModel{concept: concept, status: status, pages: pages}, nil
}

func (m lessonModel) Init() tea.Cmd {
	return nil
}

func (m lessonModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quit = true
			return m, tea.Quit
		case "left", "h", "p":
			if m.page > 0 {
				m.page--
			}
		case "right", "l", "n", "space", "enter":
			if m.page < len(m.pages)-1 {
				m.page++
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m lessonModel) View() tea.View {
	return frameView(m.width, m.height, m.concept, m.status, m.body(), m.keyHints())
}

func (m lessonModel) body() string {
	width := max(20, layout.ContentWidth(m.width))
	text := lipgloss.NewStyle().Width(width).Foreground(theme.Text).Render(m.pages[m.page])
	pager := theme.Hint.Render(fmt.Sprintf("Page %d of %d", m.page+1, len(m.pages)))
	return text + "\n\n" + pager
}

func (m lessonModel) keyHints() []layout.KeyHint {
	next := "Next page"
	if m.page == len(m.pages)-1 {
		next = "Take the quiz"
	}
	hints := []layout.KeyHint{{Key: "→/Enter", Description: next}}
	if m.page > 0 {
		hints = append(hints, layout.KeyHint{Key: "←", Description: "Previous"})
	}
	return append(hints, layout.KeyHint{Key: "q", Description: "Quit session"})
}

// frameView lays out a screen in the alt screen buffer.
func frameView(width, height int, title, status, body string, hints []layout.KeyHint) tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if width == 0 || height == 0 {
		return v
	}
	if layout.IsTooSmall(width, height) {
		v.SetContent(layout.RenderMinSizeMessage(width, height))
		return v
	}

	header := layout.RenderHeader(title, status, width)
	footer := layout.RenderFooter(hints, width)
	v.SetContent(layout.RenderFrame(header, "\n"+body, footer, width, height))
	return v
}

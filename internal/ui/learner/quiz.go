package learner

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/evaluator"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// trueFalseOptions are offered for true/false questions.
var trueFalseOptions = []string{"true", "false"}

// quizModel asks the questions of one quiz in order and collects answers.
type quizModel struct {
	quiz    *evaluator.Quiz
	status  string
	index   int
	answers []evaluator.Answer

	choice  components.MultiChoice
	input   components.TextInput
	textual bool

	width  int
	height int

	quit bool
}

func newQuizModel(quiz *evaluator.Quiz, status string) quizModel {
	m := quizModel{quiz: quiz, status: status}
	m.prepare()
	return m
}

// prepare sets up the widget for the current question.
func (m *quizModel) prepare() {
	if m.finished() {
		return
	}
	q := m.quiz.Questions[m.index]
	text := fmt.Sprintf("%d. %s", m.index+1, q.Text)

	switch q.Type {
	case evaluator.TypeMultipleChoice:
		m.textual = false
		m.choice = components.NewMultiChoice(text, q.Options)
	case evaluator.TypeTrueFalse:
		m.textual = false
		m.choice = components.NewMultiChoice(text, trueFalseOptions)
	default:
		m.textual = true
		m.input = components.NewTextInput("Type your answer...", 500)
		m.choice = components.NewMultiChoice(text, nil)
	}
}

func (m quizModel) finished() bool {
	return m.index >= len(m.quiz.Questions)
}

func (m quizModel) Init() tea.Cmd {
	if m.textual {
		return m.input.Init()
	}
	return nil
}

func (m quizModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quit = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	var answer string
	var submitted bool
	if m.textual {
		m.input, cmd = m.input.Update(msg)
		answer, submitted = m.input.Value(), m.input.Submitted()
	} else {
		m.choice, cmd = m.choice.Update(msg)
		answer, submitted = m.choice.Answer(), m.choice.Submitted
	}
	if !submitted {
		return m, cmd
	}

	m.answers = append(m.answers, evaluator.Answer{
		QuestionNumber: m.quiz.Questions[m.index].Number,
		Answer:         answer,
	})
	m.index++
	if m.finished() {
		return m, tea.Quit
	}
	m.prepare()
	return m, m.Init()
}

func (m quizModel) View() tea.View {
	title := "Quiz: " + m.quiz.ConceptName
	return frameView(m.width, m.height, title, m.status, m.body(), m.keyHints())
}

func (m quizModel) body() string {
	if m.finished() {
		return theme.Hint.Render("Scoring your answers...")
	}
	progress := theme.Hint.Render(fmt.Sprintf("Question %d of %d", m.index+1, len(m.quiz.Questions)))
	if m.textual {
		return m.choice.View() + m.input.View() + "\n\n" + progress
	}
	return m.choice.View() + "\n" + progress
}

func (m quizModel) keyHints() []layout.KeyHint {
	if m.textual {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Ctrl+C", Description: "Quit session"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓/A-Z", Description: "Choose"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+C", Description: "Quit session"},
	}
}

// Package tui is the terminal chat surface. It talks to the retrieval
// core only through the Retriever contract and to the LLM through the
// Answerer; both stay replaceable.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Kalrakhush/HarryPotter-Rag/internal/domain"
	"github.com/Kalrakhush/HarryPotter-Rag/internal/summarizer"
)

// Answerer is the optional character-voice layer; nil means raw
// passages are shown instead.
type Answerer interface {
	Answer(ctx context.Context, character, question, passages string) (string, error)
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	retriever  domain.Retriever
	answerer   Answerer
	summarize  *summarizer.Frequency
	characters []string
	topK       int

	input     textinput.Model
	viewport  viewport.Model
	character int
	status    string
	thinking  bool
	ready     bool
}

type answerMsg struct {
	question string
	answer   string
	context  string
	err      error
}

// New creates the chat model. answerer may be nil.
func New(retriever domain.Retriever, answerer Answerer, characters []string, topK int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask the book a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	if len(characters) == 0 {
		characters = []string{"Albus Dumbledore"}
	}
	return Model{
		retriever:  retriever,
		answerer:   answerer,
		summarize:  summarizer.New(3),
		characters: characters,
		topK:       topK,
		input:      ti,
		viewport:   viewport.New(0, 0),
		status:     "Index loaded. Tab switches character.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, frame := boxStyle.GetFrameSize()
		height := msg.Height - frame - 5
		if height < 3 {
			height = 3
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = height
		return m, nil

	case answerMsg:
		m.thinking = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Answered as %s", m.characters[m.character])
		var b strings.Builder
		b.WriteString(msg.answer)
		if msg.context != "" {
			b.WriteString("\n\n")
			b.WriteString(contextStyle.Render("From the book: " + msg.context))
		}
		m.viewport.SetContent(b.String())
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "tab":
			m.character = (m.character + 1) % len(m.characters)
			m.status = "Speaking with " + m.characters[m.character]
			return m, nil
		case "shift+tab":
			m.character = (m.character - 1 + len(m.characters)) % len(m.characters)
			m.status = "Speaking with " + m.characters[m.character]
			return m, nil
		case "enter":
			question := strings.TrimSpace(m.input.Value())
			if question == "" || m.thinking {
				return m, nil
			}
			m.thinking = true
			m.status = "Consulting the book..."
			m.input.Reset()
			return m, m.ask(question)
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ask retrieves passages and, when an answerer is configured, asks for
// a character-voiced reply; otherwise the passages themselves are the
// answer.
func (m Model) ask(question string) tea.Cmd {
	character := m.characters[m.character]
	return func() tea.Msg {
		passages, err := m.retriever.Search(question, m.topK)
		if err != nil {
			return answerMsg{question: question, err: err}
		}
		if m.answerer == nil {
			return answerMsg{question: question, answer: passages}
		}
		answer, err := m.answerer.Answer(context.Background(), character, question, passages)
		if err != nil {
			// Degrade to the raw passages rather than losing the turn.
			return answerMsg{question: question, answer: passages}
		}
		return answerMsg{
			question: question,
			answer:   answer,
			context:  m.summarize.Summarize(passages),
		}
	}
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := titleStyle.Render("Hogwarts Knowledge Vault")
	who := characterStyle.Render("Character: " + m.characters[m.character])
	body := boxStyle.Render(m.viewport.View())
	input := boxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "  " + who + "\n" + body + "\n" + input + "\n" + status
}

var (
	boxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	characterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	contextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

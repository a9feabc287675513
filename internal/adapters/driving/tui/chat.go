// Package tui provides the interactive chat view over the answer
// service, following the Elm architecture on bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
	"github.com/lexvault-labs/lexvault/internal/core/ports/driving"
)

// exchange is one question/answer pair in the transcript.
type exchange struct {
	Question string
	Answer   domain.Answer
	Err      error
}

// answerMsg carries a completed generation back into the update loop.
type answerMsg struct {
	question string
	answer   domain.Answer
	err      error
}

// Chat is the interactive Q&A view. It implements tea.Model.
type Chat struct {
	answers  driving.AnswerService
	tenantID string
	topK     int

	ctx      context.Context
	styles   chatStyles
	input    textinput.Model
	view     viewport.Model
	spin     spinner.Model
	history  []exchange
	thinking bool
	ready    bool
	width    int
	height   int
}

// Ensure Chat implements tea.Model.
var _ tea.Model = (*Chat)(nil)

// NewChat creates the chat view over the answer service.
func NewChat(answers driving.AnswerService, tenantID string, topK int) *Chat {
	input := textinput.New()
	input.Placeholder = "Ask about your documents..."
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &Chat{
		answers:  answers,
		tenantID: tenantID,
		topK:     topK,
		ctx:      context.Background(),
		styles:   defaultChatStyles(),
		input:    input,
		spin:     spin,
		width:    80,
		height:   24,
	}
}

// WithContext sets the context used for answer generation.
func (c *Chat) WithContext(ctx context.Context) *Chat {
	c.ctx = ctx
	return c
}

// Init starts the input cursor blink.
func (c *Chat) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (c *Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
		c.height = msg.Height
		if !c.ready {
			c.view = viewport.New(msg.Width, msg.Height-4)
			c.ready = true
		} else {
			c.view.Width = msg.Width
			c.view.Height = msg.Height - 4
		}
		c.refresh()
		return c, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return c, tea.Quit
		case tea.KeyEnter:
			question := strings.TrimSpace(c.input.Value())
			if question == "" || c.thinking {
				return c, nil
			}
			c.input.SetValue("")
			c.thinking = true
			return c, tea.Batch(c.spin.Tick, c.ask(question))
		}

	case answerMsg:
		c.thinking = false
		c.history = append(c.history, exchange{
			Question: msg.question,
			Answer:   msg.answer,
			Err:      msg.err,
		})
		c.refresh()
		c.view.GotoBottom()
		return c, nil

	case spinner.TickMsg:
		if !c.thinking {
			return c, nil
		}
		var cmd tea.Cmd
		c.spin, cmd = c.spin.Update(msg)
		return c, cmd
	}

	var inputCmd, viewCmd tea.Cmd
	c.input, inputCmd = c.input.Update(msg)
	c.view, viewCmd = c.view.Update(msg)
	return c, tea.Batch(inputCmd, viewCmd)
}

// ask generates an answer off the update loop.
func (c *Chat) ask(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := c.answers.Answer(c.ctx, c.tenantID, question, c.topK)
		return answerMsg{question: question, answer: answer, err: err}
	}
}

// refresh re-renders the transcript into the viewport.
func (c *Chat) refresh() {
	if !c.ready {
		return
	}
	c.view.SetContent(c.transcript())
}

// transcript renders the full conversation history.
func (c *Chat) transcript() string {
	var b strings.Builder
	for i := range c.history {
		e := &c.history[i]
		b.WriteString(c.styles.Question.Render("You: "+e.Question) + "\n\n")

		if e.Err != nil {
			b.WriteString(c.styles.Error.Render("Error: "+e.Err.Error()) + "\n\n")
			continue
		}

		b.WriteString(c.styles.Answer.Render(e.Answer.Text) + "\n")
		for j := range e.Answer.Citations {
			cit := &e.Answer.Citations[j]
			source := cit.DocumentName
			if cit.Page > 0 {
				source = fmt.Sprintf("%s, page %d", cit.DocumentName, cit.Page)
			}
			b.WriteString(c.styles.Source.Render(fmt.Sprintf("  [%d] %s (%.4f)", j+1, source, cit.Score)) + "\n")
		}
		for _, q := range e.Answer.FollowUps {
			b.WriteString(c.styles.FollowUp.Render("  ? "+q) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// View renders the chat.
func (c *Chat) View() string {
	if !c.ready {
		return "Initialising..."
	}

	var status string
	if c.thinking {
		status = c.spin.View() + " Thinking..."
	} else {
		status = c.styles.Help.Render("enter: ask    esc: quit")
	}

	return strings.Join([]string{
		c.styles.Title.Render("LexVault"),
		c.view.View(),
		c.styles.InputLine.Width(c.width).Render(c.input.View()),
		status,
	}, "\n")
}

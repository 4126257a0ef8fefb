package playcmder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/papercomputeco/pixelo/pkg/cliui"
	"github.com/papercomputeco/pixelo/pkg/game"
)

const (
	historyRows  = 15
	defaultWidth = 60
)

var (
	playTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	playMutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	playSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	playLatestStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("214")).Bold(true)
	playErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type playKeyMap struct {
	Guess key.Binding
	Quit  key.Binding
}

func (k playKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Guess, k.Quit}
}

func (k playKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Guess, k.Quit}}
}

func defaultKeyMap() playKeyMap {
	return playKeyMap{
		Guess: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "guess")),
		Quit:  key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

type playModel struct {
	player  *player
	input   textinput.Model
	keys    playKeyMap
	help    help.Model
	width   int
	message string
	latest  string
	err     error
}

func runTUI(ctx context.Context, p *player) error {
	// Force TrueColor, lipgloss misdetects some terminals.
	// See: https://github.com/charmbracelet/lipgloss/issues/439
	renderer := lipgloss.NewRenderer(os.Stdout, termenv.WithProfile(termenv.TrueColor))
	renderer.SetColorProfile(termenv.TrueColor)
	lipgloss.SetDefaultRenderer(renderer)

	program := bubbletea.NewProgram(newPlayModel(p),
		bubbletea.WithContext(ctx),
		bubbletea.WithAltScreen(),
	)
	final, err := program.Run()
	if err != nil {
		return err
	}

	m := final.(playModel)
	if m.err != nil {
		return m.err
	}
	if p.session.Solved() {
		fmt.Printf("%s Solved %s in %d guesses: %s\n", cliui.SuccessMark, p.id, p.session.Score(), p.session.Target())
	}
	return nil
}

func newPlayModel(p *player) playModel {
	ti := textinput.New()
	ti.Placeholder = "type a word"
	ti.Prompt = "› "
	ti.CharLimit = 64
	ti.Focus()

	m := playModel{
		player: p,
		input:  ti,
		keys:   defaultKeyMap(),
		help:   help.New(),
		width:  defaultWidth,
	}
	if p.resumed() {
		m.message = fmt.Sprintf("Resumed with %d guesses.", p.session.Score())
	}
	if p.session.Solved() {
		m.message = fmt.Sprintf("%s Already solved: %s", cliui.SuccessMark, p.session.Target())
		m.input.Blur()
	}
	return m
}

func (m playModel) Init() bubbletea.Cmd {
	return textinput.Blink
}

func (m playModel) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg := msg.(type) {
	case bubbletea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case bubbletea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, bubbletea.Quit
		case key.Matches(msg, m.keys.Guess):
			return m.submit()
		}
	}

	var cmd bubbletea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m playModel) submit() (bubbletea.Model, bubbletea.Cmd) {
	word := m.input.Value()
	m.input.Reset()

	res, err := m.player.guess(word)
	switch {
	case errors.Is(err, game.ErrEmptyGuess):
		return m, nil
	case errors.Is(err, game.ErrSolved):
		m.message = fmt.Sprintf("Already solved: %s", m.player.session.Target())
		return m, nil
	case err != nil:
		m.err = err
		return m, bubbletea.Quit
	}

	m.message = formatResult(res)
	if scored(res.Status) {
		m.latest = res.Attempt.Word
	}
	if res.Status == game.StatusCorrect {
		m.input.Blur()
	}
	return m, nil
}

func (m playModel) View() string {
	var b strings.Builder
	p := m.player

	b.WriteString(playTitleStyle.Render("pixelo " + p.id))
	b.WriteString(playMutedStyle.Render(fmt.Sprintf("  %d words  %d guesses", p.words, p.session.Score())))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.message != "" {
		b.WriteString(m.truncate(m.message))
		b.WriteString("\n\n")
	}

	if history := p.session.History(); len(history) > 0 {
		b.WriteString(playSectionStyle.Render("closest guesses"))
		b.WriteString("\n")
		for _, a := range closest(history, historyRows) {
			b.WriteString(m.historyRow(a))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(playErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m playModel) historyRow(a game.Attempt) string {
	word := a.Word
	if word == m.latest {
		word = playLatestStyle.Render(word)
	}
	return m.truncate(fmt.Sprintf("  %6s  %s  %s", formatRank(a.Rank), word, heatBar(a.Rank)))
}

func (m playModel) truncate(s string) string {
	if m.width <= 0 {
		return s
	}
	return ansi.Truncate(s, m.width, "…")
}

// heatBar draws a bar that grows as the rank approaches the target.
func heatBar(rank int) string {
	const width = 20
	filled := 1
	switch {
	case rank < cliui.HotRank:
		filled = width - rank*width/(2*cliui.HotRank)
	case rank < cliui.WarmRank:
		filled = width / 2 * (cliui.WarmRank - rank) / cliui.WarmRank
	}
	filled = max(1, min(width, filled))
	return cliui.RankStyle(rank).Render(strings.Repeat("█", filled)) +
		playMutedStyle.Render(strings.Repeat("░", width-filled))
}

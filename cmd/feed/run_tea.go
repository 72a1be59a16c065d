package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xqrs/stableview/anchor"
	"github.com/xqrs/stableview/internal/feed"
	"github.com/xqrs/stableview/tealist"
)

// renderPost wraps a post to width: a header line, the body, and a blank
// line between posts.
func renderPost(p feed.Post, width int) []string {
	header := fmt.Sprintf("%s · %s · %s", p.Author, p.Source, p.At.Format(time.TimeOnly))
	body := lipgloss.NewStyle().Width(width).Render(p.Body)
	lines := append([]string{header}, strings.Split(body, "\n")...)
	return append(lines, "")
}

// feedModel adds a quit key around the list.
type feedModel struct {
	list *tealist.Model[feed.Post, string]
	quit key.Binding
}

func newFeedModel(s *session) feedModel {
	list := tealist.New(feed.Post.Key, renderPost)
	list.Overscroll = s.cfg.List.Overscroll
	list.PullThreshold = s.cfg.List.PullThreshold
	list.SettleDelay = s.cfg.List.SettleDelay.Duration
	list.SetExpectedDirection(s.cfg.List.ExpectUp)
	list.SetLogger(s.logger.With("component", "list"))
	return feedModel{
		list: list,
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (m feedModel) Init() tea.Cmd {
	return m.list.Init()
}

func (m feedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.quit) {
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m feedModel) View() string {
	return m.list.View()
}

// runTea runs the bubbletea UI until the user quits and returns the final
// position.
func runTea(s *session, saved anchor.Position[string], restore bool) (anchor.Position[string], error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := newFeedModel(s)
	model.list.SetContext(ctx)
	model.list.SetItems(s.store.Posts())
	if restore {
		model.list.Restore(saved)
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	publish := func(posts []feed.Post) {
		program.Send(tealist.SetItemsMsg[feed.Post]{Items: posts})
	}
	model.list.SetRefreshFunc(s.refresh(publish))

	go s.produce(ctx, publish)

	if _, err := program.Run(); err != nil {
		return anchor.Position[string]{}, fmt.Errorf("run tea ui: %w", err)
	}
	return model.list.Position(), nil
}

package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v3"

	"github.com/xqrs/stableview"
	"github.com/xqrs/stableview/anchor"
	"github.com/xqrs/stableview/help"
	"github.com/xqrs/stableview/internal/feed"
	"github.com/xqrs/stableview/keybind"
)

// helpKeys shows the list bindings followed by quit.
type helpKeys struct {
	list stableview.ListKeys
	quit keybind.Keybind
}

func (k helpKeys) ShortHelp() []keybind.Keybind {
	return append(k.list.ShortHelp(), k.quit)
}

func postItem(p feed.Post) stableview.ListItem {
	return stableview.NewTextItemStyled().
		AddParagraph(fmt.Sprintf("%s · %s · %s", p.Author, p.Source, p.At.Format(time.TimeOnly)),
			tcell.StyleDefault.Foreground(stableview.Styles.SecondaryTextColor).Bold(true)).
		AddParagraph(p.Body, tcell.StyleDefault.Foreground(stableview.Styles.PrimaryTextColor))
}

// newFeedList builds the anchored list the tview UI shows.
func newFeedList(s *session) *stableview.AnchoredList[feed.Post, string] {
	list := stableview.NewAnchoredList(feed.Post.Key, postItem)
	list.SetTitle("feed").
		SetExpectedDirection(s.cfg.List.ExpectUp).
		SetGap(s.cfg.List.Gap).
		SetOverscroll(s.cfg.List.Overscroll).
		SetPullThreshold(s.cfg.List.PullThreshold).
		SetSettleDelay(s.cfg.List.SettleDelay.Duration).
		SetLogger(s.logger.With("component", "list"))
	return list
}

// runTview runs the tcell UI until the user quits and returns the final
// position.
func runTview(s *session, saved anchor.Position[string], restore bool) (anchor.Position[string], error) {
	app := stableview.NewApplication().SetLogger(s.logger.With("component", "app"))
	list := newFeedList(s)
	bar := help.New()
	frame := stableview.NewFrame(list).SetFooter(bar)
	bar.SetKeyMap(helpKeys{list: list.Keys(), quit: frame.QuitKeys()})

	publish := func(posts []feed.Post) {
		app.QueueUpdateDraw(func() {
			list.SetItems(posts)
		})
	}
	list.SetRefreshFunc(s.refresh(publish))
	list.SetPositionChangedFunc(func(p anchor.Position[string]) {
		bar.SetStatus(p.String())
	})

	list.SetItems(s.store.Posts())
	if restore {
		list.Restore(saved)
	}
	app.SetRoot(frame)

	go s.produce(app.Context(), publish)

	if err := app.Run(); err != nil {
		return anchor.Position[string]{}, fmt.Errorf("run tview ui: %w", err)
	}
	return list.Position(), nil
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/xqrs/stableview/anchor"
	"github.com/xqrs/stableview/anchor/anchortest"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay scripted feed mutations without a terminal",
	Long: `Replay applies a fixed series of inserts, removals and scrolls to an
in-memory list and prints where the list is anchored after each one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		defer s.closeLog()

		expectUp := s.cfg.List.ExpectUp
		if cmd.Flags().Changed("expect-up") {
			if expectUp, err = cmd.Flags().GetBool("expect-up"); err != nil {
				return fmt.Errorf("failed to get expect-up flag: %w", err)
			}
		}
		return printReplay(cmd.OutOrStdout(), replay(expectUp, s.logger))
	},
}

func init() {
	replayCmd.Flags().Bool("expect-up", true, "new rows arrive above the current ones")
}

var (
	stepColor     = color.New(color.Bold)
	positionColor = color.New(color.FgCyan)
	topColor      = color.New(color.FgGreen)
	fallbackColor = color.New(color.FgYellow, color.Bold)
)

// replayStep is the state of the list after one scripted action.
type replayStep struct {
	Name      string
	Position  anchor.Position[string]
	Top       string
	TopOffset int
	Offset    int
	FellBack  bool
}

func keys(prefix string, from, to int) []string {
	var out []string
	for i := from; i <= to; i++ {
		out = append(out, fmt.Sprintf("%s%d", prefix, i))
	}
	return out
}

func without(seq []string, drop string) []string {
	return slices.DeleteFunc(slices.Clone(seq), func(k string) bool { return k == drop })
}

// replay scrolls into a ten row list and mutates it around the anchored row.
// Rows are two lines tall, except p3 with three, in a six line viewport.
func replay(expectUp bool, logger *slog.Logger) []replayStep {
	host := anchortest.NewHost[string](6, 2).SetHeight("p3", 3)
	coordinator := anchor.NewCoordinator[string](host,
		anchor.WithExpectedDirection[string](expectUp),
		anchor.WithLogger[string](logger),
	)
	host.OnScroll = coordinator.ScrollChanged

	var steps []replayStep
	record := func(name string, fellBack bool) {
		step := replayStep{
			Name:     name,
			Position: coordinator.Position(),
			Offset:   host.ScrollOffset(),
			FellBack: fellBack,
		}
		step.Top, step.TopOffset, _ = host.TopVisible()
		steps = append(steps, step)
	}
	current := []string{}
	set := func(name string, next []string) {
		before := coordinator.Position()
		coordinator.SetItems(anchor.NewSequence(next...))
		current = next
		record(name, before.IsItem() && !slices.Contains(next, before.Key))
	}

	set("load", keys("p", 1, 10))

	host.Drag(7)
	record("scroll down 7", false)

	set("prepend 3", append([]string{"n3", "n2", "n1"}, current...))
	set("append 2", append(slices.Clone(current), "p11", "p12"))

	top, _, _ := host.TopVisible()
	set("remove anchored row", without(current, top))

	host.Drag(-host.ScrollOffset() - 2)
	record("pull past top", false)
	set("prepend while bouncing", append([]string{"n4"}, current...))
	host.Settle()
	record("settle", false)

	set("replace all", keys("x", 1, 4))
	return steps
}

func printReplay(w io.Writer, steps []replayStep) error {
	for _, step := range steps {
		line := fmt.Sprintf("%s anchor %s offset %3d  top %s",
			stepColor.Sprintf("%-24s", step.Name),
			positionColor.Sprintf("%-18s", step.Position),
			step.Offset,
			topColor.Sprintf("%s%+d", step.Top, step.TopOffset),
		)
		if step.FellBack {
			line += "  " + fallbackColor.Sprint("fallback")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

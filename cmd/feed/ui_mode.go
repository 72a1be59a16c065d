package main

import (
	"fmt"
	"strings"
)

type uiMode string

const (
	uiModeAuto  uiMode = "auto"
	uiModeTview uiMode = "tview"
	uiModeTea   uiMode = "tea"
	uiModePlain uiMode = "plain"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "tview":
		return uiModeTview, nil
	case "tea", "bubbletea":
		return uiModeTea, nil
	case "plain", "off":
		return uiModePlain, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|tview|tea|plain)", value)
	}
}

// resolveUIMode turns auto into a concrete mode: the tview host on a
// terminal, plain text otherwise.
func resolveUIMode(mode uiMode, terminal bool) uiMode {
	if mode != uiModeAuto {
		return mode
	}
	if terminal {
		return uiModeTview
	}
	return uiModePlain
}

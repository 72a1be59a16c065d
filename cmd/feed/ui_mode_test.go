package main

import "testing"

func TestReadUIMode(t *testing.T) {
	type tc struct {
		value   string
		want    uiMode
		wantErr bool
	}

	tests := map[string]tc{
		"empty":     {value: "", want: uiModeAuto},
		"auto":      {value: "auto", want: uiModeAuto},
		"tview":     {value: " TView ", want: uiModeTview},
		"tea":       {value: "tea", want: uiModeTea},
		"bubbletea": {value: "bubbletea", want: uiModeTea},
		"off":       {value: "off", want: uiModePlain},
		"invalid":   {value: "gui", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := readUIMode(tc.value)
			if (err != nil) != tc.wantErr {
				t.Fatalf("readUIMode(%q) error = %v, wantErr %v", tc.value, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("readUIMode(%q) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestResolveUIMode(t *testing.T) {
	if got := resolveUIMode(uiModeAuto, true); got != uiModeTview {
		t.Errorf("auto on a terminal = %q, want tview", got)
	}
	if got := resolveUIMode(uiModeAuto, false); got != uiModePlain {
		t.Errorf("auto without a terminal = %q, want plain", got)
	}
	if got := resolveUIMode(uiModeTea, false); got != uiModeTea {
		t.Errorf("explicit tea = %q, want tea", got)
	}
}

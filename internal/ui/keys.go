package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "ctrl+c":
		return true
	}
	return false
}

func helpText(loaded bool) string {
	s := ""
	if loaded {
		s = "p play  x pause  space toggle  +/- volume  "
	}
	s += "o open  [/] freq  {/} speed  arrows orbit  ,/. zoom  q quit"
	return s
}

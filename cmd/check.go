package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/mangomedia/mango/constant"
	"github.com/mangomedia/mango/icon"
	"github.com/mangomedia/mango/key"
	"github.com/mangomedia/mango/style"
	"github.com/spf13/viper"
)

var installHints = map[string]string{
	constant.Darwin:  "brew install mpv",
	constant.Linux:   "sudo apt install mpv",
	constant.Windows: "scoop install mpv",
}

// CheckDependencies exits when the configured player is not on PATH. Both
// content and ad creatives are played by it.
func CheckDependencies() {
	name := viper.GetString(key.Player)
	if name == "" {
		name = "mpv"
	}

	if _, err := exec.LookPath(name); err != nil {
		fmt.Println(missingDependency(name, installHints[runtime.GOOS]))
		os.Exit(1)
	}
}

func missingDependency(dep, hint string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.ErrorColor).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.ErrorColor).Render(fmt.Sprintf("%s %s not found", icon.Get(icon.Fail), dep))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("%s plays both the content and the ads and must be on your PATH.", dep))

	lines := []string{title, "", body}
	if hint != "" {
		lines = append(lines, "", "Install it with:", "  "+style.New().Foreground(style.AccentColor).Bold(true).Render(hint))
	}

	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

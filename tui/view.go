package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mangomedia/mango/color"
	"github.com/mangomedia/mango/icon"
	"github.com/mangomedia/mango/playback"
	"github.com/mangomedia/mango/style"
	"github.com/muesli/reflow/wrap"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case homeState:
		output = listExtraPaddingStyle.Render(b.homeC.View())
	case historyState:
		output = listExtraPaddingStyle.Render(b.historyC.View())
	case playerState:
		output = b.viewPlayer()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewPlayer() string {
	c := b.coordinator
	if c == nil {
		return b.viewLoading()
	}

	status := phaseText(c.Phase(), c.Content())
	switch c.Phase() {
	case playback.PhaseRequestingAd:
		status = b.spinnerC.View() + " " + status
	case playback.PhasePausedForAd:
		status = style.Fg(style.AdColor)(icon.Get(icon.Ad) + " " + status)
	}

	lines := []string{
		style.Title("Now Playing"),
		"",
		wrap.String(style.Fg(color.Purple)(b.visit.Title), b.width),
		"",
		status,
	}

	if c.Controls() {
		slider := c.Slider()
		duration := "--:--"
		if d, ok := c.LastDuration().Get(); ok {
			duration = formatClock(d)
		}

		lines = append(lines,
			"",
			fmt.Sprintf("%s %s %s / %s",
				c.Affordance().Icon(),
				b.progressC.ViewAs(slider.Fraction()),
				formatClock(c.Position()),
				duration,
			),
		)
	}

	if outcome, ok := c.Outcome().Get(); ok {
		lines = append(lines, "", style.Faint("ads: "+outcome.Cause.String()))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorMsg := wrap.String(errorStyle.Render(b.lastError.Error()), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}

// phaseText is the status line of the player screen.
func phaseText(phase playback.Phase, content playback.ContentState) string {
	switch phase {
	case playback.PhaseInit:
		return "Starting"
	case playback.PhaseRequestingAd:
		return "Loading ads"
	case playback.PhasePausedForAd:
		return "Ad playing"
	case playback.PhaseClosed:
		return "Closed"
	}

	switch content {
	case playback.ContentPaused:
		return "Paused"
	case playback.ContentStopped:
		return "Finished"
	default:
		return "Playing"
	}
}

// formatClock renders seconds as m:ss, or h:mm:ss past the hour.
func formatClock(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}

	s := int(seconds)
	if s >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", s/3600, s/60%60, s%60)
	}
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

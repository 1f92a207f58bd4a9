package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mangomedia/mango/catalog"
	"github.com/mangomedia/mango/color"
	"github.com/mangomedia/mango/icon"
	"github.com/mangomedia/mango/internal/app"
	"github.com/mangomedia/mango/key"
	"github.com/mangomedia/mango/log"
	"github.com/mangomedia/mango/playback"
	"github.com/mangomedia/mango/player"
	"github.com/mangomedia/mango/queue"
	"github.com/mangomedia/mango/style"
	"github.com/mangomedia/mango/subscription"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringP("find", "f", "", "Play the catalog entry that best matches the query")
	playCmd.Flags().StringP("title", "t", "", "Window title")
	addSubscribedFlag(playCmd)
	playCmd.MarkFlagsMutuallyExclusive("find", "title")
}

var playCmd = &cobra.Command{
	Use:   "play [url]",
	Short: "Play a stream without the TUI",
	Long: `Play a stream in mpv without the TUI. Unsubscribed playback is gated by
the configured VMAP ad tag. Without a url the catalog sample stream is played.`,
	Args:    cobra.MaximumNArgs(1),
	Example: "  mango play --find horizontal\n  mango play --subscribed https://example.com/master.m3u8",
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		url, title := resolveContent(cmd, args)

		subscribed, ok := subscribedOverride(cmd).Get()
		if !ok {
			var err error
			subscribed, err = subscription.Subscribed()
			handleErr(err)
		}

		handleErr(playHeadless(url, title, subscribed))
	},
}

func resolveContent(cmd *cobra.Command, args []string) (url, title string) {
	c := catalog.New(viper.GetString(key.CatalogSampleURL))

	if query := lo.Must(cmd.Flags().GetString("find")); query != "" {
		found := c.Find(query)
		if len(found) == 0 {
			handleErr(fmt.Errorf("nothing in the catalog matches %q", query))
		}
		return found[0].ContentURL, found[0].Title
	}

	title = lo.Must(cmd.Flags().GetString("title"))
	if len(args) == 1 {
		return args[0], lo.Ternary(title != "", title, args[0])
	}

	first := c.Thumbnails()[0]
	return first.ContentURL, lo.Ternary(title != "", title, first.Title)
}

// playHeadless runs one visit on a serial queue until mpv exits or the
// process is interrupted.
func playHeadless(url, title string, subscribed bool) error {
	p, err := player.New(viper.GetString(key.Player))
	if err != nil {
		return err
	}

	if err := p.Load(url, title); err != nil {
		return err
	}

	q := queue.NewSerial()
	defer q.Close()

	var (
		c       *playback.Coordinator
		printed string
	)

	visit := app.Visit{
		ContentURL: url,
		Title:      title,
		Subscribed: subscribed,
		Player:     p,
		Queue:      q,
		OnChange: func() {
			status := c.Phase().String()
			if c.Phase() == playback.PhaseContentPlaying {
				status = c.Content().String()
			}
			if status == printed {
				return
			}
			printed = status
			fmt.Printf("%s %s\n", style.Fg(color.Purple)(icon.Get(icon.Progress)), status)
		},
	}

	surface := app.NewSurface(p)
	c = app.NewCoordinator(visit, surface)

	q.Dispatch(func() {
		c.Appear()
		c.Visible()
	})

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	select {
	case <-p.Wait():
	case <-interrupt:
		log.With("play").Info("interrupted")
	}

	closed := make(chan struct{})
	q.Dispatch(func() {
		defer close(closed)

		c.Teardown()
		surface.Close()
		if err := app.SaveHistory(visit, c); err != nil {
			log.With("play").Warnf("save history: %s", err)
		}
		if outcome, ok := c.Outcome().Get(); ok {
			fmt.Printf("%s ads %s\n", style.Faint(icon.Get(icon.Ad)), outcome.Cause)
		}
	})
	<-closed

	if err := p.Close(); err != nil {
		log.With("play").Debugf("close player: %s", err)
	}
	return nil
}

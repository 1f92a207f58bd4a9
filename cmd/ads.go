package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mangomedia/mango/ads"
	"github.com/mangomedia/mango/ads/vmap"
	"github.com/mangomedia/mango/color"
	"github.com/mangomedia/mango/internal/app"
	"github.com/mangomedia/mango/key"
	"github.com/mangomedia/mango/style"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(adsCmd)
	adsCmd.AddCommand(adsTagCmd)
	adsCmd.AddCommand(adsInspectCmd)

	adsInspectCmd.Flags().BoolP("json", "j", false, "Print the resolved breaks as JSON")
	adsInspectCmd.SetOut(os.Stdout)
}

var adsCmd = &cobra.Command{
	Use:   "ads",
	Short: "Inspect the ad configuration",
}

var adsTagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Print the ad tag URL with a fresh correlator",
	Run: func(cmd *cobra.Command, args []string) {
		url, err := ads.NewRequestContext(viper.GetString(key.AdsTag), time.Now()).URL()
		handleErr(err)
		fmt.Println(url)
	},
}

type inspectedBreak struct {
	ID       string        `json:"id"`
	CuePoint string        `json:"cue_point"`
	Ads      []inspectedAd `json:"ads"`
	Error    string        `json:"error,omitempty"`
}

type inspectedAd struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
	Media    string  `json:"media,omitempty"`
}

var adsInspectCmd = &cobra.Command{
	Use:   "inspect [tag]",
	Short: "Fetch the ad schedule and print its cue points",
	Long: `Fetch the VMAP document behind the ad tag, resolve every VAST wrapper and
print the breaks it schedules. Defaults to the configured ad tag.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tag := viper.GetString(key.AdsTag)
		if len(args) == 1 {
			tag = args[0]
		}

		url, err := ads.NewRequestContext(tag, time.Now()).URL()
		handleErr(err)

		ctx, cancel := context.WithTimeout(context.Background(), app.AdTimeout())
		defer cancel()

		breaks, err := app.NewAdLoader().Resolve(ctx, url)
		handleErr(err)

		cues := ads.ClassifyCuePoints(lo.Map(breaks, func(b *vmap.Break, _ int) mo.Option[float64] {
			return b.Offset.CuePoint()
		}))

		inspected := lo.Map(breaks, func(b *vmap.Break, i int) inspectedBreak {
			return inspectBreak(b, cues[i])
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(inspected))
			return
		}

		for _, b := range inspected {
			cmd.Println(style.Fg(color.Purple)(b.CuePoint))
			if b.Error != "" {
				cmd.Println("  " + style.Fg(color.Red)(b.Error))
			}
			for _, a := range b.Ads {
				cmd.Printf("  %s %s %s\n", style.Bold(a.Title), style.Faint(fmt.Sprintf("%.0fs", a.Duration)), style.Faint(a.Media))
			}
		}
	},
}

func inspectBreak(b *vmap.Break, cue ads.CuePoint) inspectedBreak {
	ib := inspectedBreak{
		ID:       b.ID,
		CuePoint: cue.String(),
		Ads: lo.Map(b.Ads, func(a vmap.LinearAd, _ int) inspectedAd {
			ad := inspectedAd{ID: a.AdID, Title: a.Title, Duration: a.Duration.Seconds()}
			if media, ok := a.Pick(nil); ok {
				ad.Media = media.URL
			}
			return ad
		}),
	}
	if b.Err != nil {
		ib.Error = b.Err.Error()
	}
	return ib
}

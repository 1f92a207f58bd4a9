package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mangomedia/mango/color"
	"github.com/mangomedia/mango/icon"
	"github.com/mangomedia/mango/style"
	"github.com/mangomedia/mango/subscription"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(subscriptionCmd)
}

var subscriptionCmd = &cobra.Command{
	Use:       "subscription [on|off|status]",
	Short:     "Show or change the subscription flag",
	Long:      "Subscribed playback skips ads. Without an argument you are asked whether to subscribe.",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off", "status"},
	Run: func(cmd *cobra.Command, args []string) {
		current, err := subscription.Subscribed()
		handleErr(err)

		var want bool
		switch {
		case len(args) == 0:
			confirm := survey.Confirm{
				Message: "Subscribe and play without ads?",
				Default: current,
			}
			handleErr(survey.AskOne(&confirm, &want))
		case args[0] == "status":
			printSubscription(current)
			return
		default:
			want = args[0] == "on"
		}

		if want != current {
			handleErr(subscription.Set(want))
		}
		printSubscription(want)
	},
}

func printSubscription(subscribed bool) {
	if subscribed {
		fmt.Printf("%s %s\n", icon.Get(icon.Subscribed), style.Fg(color.Green)("subscribed, ads are skipped"))
		return
	}
	fmt.Printf("%s %s\n", icon.Get(icon.Unsubscribed), style.Fg(color.Yellow)("not subscribed, ads play before content"))
}

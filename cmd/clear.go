package cmd

import (
	"fmt"

	"github.com/mangomedia/mango/filesystem"
	"github.com/mangomedia/mango/icon"
	"github.com/mangomedia/mango/subscription"
	"github.com/mangomedia/mango/util"
	"github.com/mangomedia/mango/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	clear    func() error
}

func removePath(path func() string) func() error {
	return func() error {
		return filesystem.API().RemoveAll(path())
	}
}

var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), removePath(where.Cache)},
	{"history file", "history", mo.Some("s"), removePath(where.History)},
	{"log files", "logs", mo.Some("l"), removePath(where.Logs)},
	{"player sockets", "temp", mo.Some("t"), removePath(where.Temp)},
	{"subscription flag", "subscription", mo.None[string](), subscription.Reset},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if short, ok := target.argShort.Get(); ok {
			clearCmd.Flags().BoolP(target.argLong, short, false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached and saved data",
	Run: func(cmd *cobra.Command, args []string) {
		targets := lo.Filter(clearTargets, func(t clearTarget, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(t.argLong))
		})

		if len(targets) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, target := range targets {
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), target.name))
			err := target.clear()
			erase()
			handleErr(err)
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
		}
	},
}

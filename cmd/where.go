package cmd

import (
	"os"

	"github.com/mangomedia/mango/color"
	"github.com/mangomedia/mango/style"
	"github.com/mangomedia/mango/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type whereTarget struct {
	name    string
	where   func() string
	argLong string
}

var wherePaths = []whereTarget{
	{"Config", where.Config, "config"},
	{"Logs", where.Logs, "logs"},
	{"History", where.History, "history"},
	{"Cache", where.Cache, "cache"},
	{"Temp", where.Temp, "temp"},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, t := range wherePaths {
		whereCmd.Flags().Bool(t.argLong, false, t.name+" path")
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(wherePaths, func(t whereTarget, _ int) string {
		return t.argLong
	})...)

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Print the paths mango reads and writes",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range wherePaths {
			if lo.Must(cmd.Flags().GetBool(t.argLong)) {
				cmd.Println(t.where())
				return
			}
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		for i, t := range wherePaths {
			cmd.Printf("%s %s\n", header(t.name+"?"), style.Fg(color.Yellow)("--"+t.argLong))
			cmd.Println(t.where())

			if i < len(wherePaths)-1 {
				cmd.Println()
			}
		}
	},
}

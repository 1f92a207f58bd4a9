package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mangomedia/mango/color"
	"github.com/mangomedia/mango/history"
	"github.com/mangomedia/mango/icon"
	"github.com/mangomedia/mango/style"
	"github.com/mangomedia/mango/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolP("clear", "c", false, "Forget every saved position")
	historyCmd.Flags().BoolP("json", "j", false, "Print the history as JSON")
	historyCmd.MarkFlagsMutuallyExclusive("clear", "json")
	historyCmd.SetOut(os.Stdout)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved playback positions",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("clear")) {
			handleErr(history.Clear())
			fmt.Printf("%s history cleared\n", style.Fg(color.Green)(icon.Get(icon.Success)))
			return
		}

		entries, err := history.Recent()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(entries))
			return
		}

		if len(entries) == 0 {
			cmd.Println(style.Faint("nothing watched yet"))
			return
		}

		for _, e := range entries {
			cmd.Printf("%s %s\n", e.String(), style.Faint(e.ContentURL))
		}
		cmd.Println(style.Faint(util.Quantify(len(entries), "entry", "entries")))
	},
}

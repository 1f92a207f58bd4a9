// Package cmd implements the command-line interface of mango.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/mangomedia/mango/color"
	"github.com/mangomedia/mango/constant"
	"github.com/mangomedia/mango/icon"
	"github.com/mangomedia/mango/key"
	"github.com/mangomedia/mango/log"
	"github.com/mangomedia/mango/style"
	"github.com/mangomedia/mango/tui"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Icon variant (e.g. nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().Bool("write-history", true, "Save the playback position when leaving the player")
	lo.Must0(viper.BindPFlag(key.HistorySave, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.PersistentFlags().String("ad-tag", "", "VMAP ad tag URL used for unsubscribed playback")
	lo.Must0(viper.BindPFlag(key.AdsTag, rootCmd.PersistentFlags().Lookup("ad-tag")))

	rootCmd.Flags().BoolP("history", "H", false, "Open the watch history instead of the home screen")
	addSubscribedFlag(rootCmd)
}

// addSubscribedFlag registers --subscribed, which overrides the stored flag
// for a single run.
func addSubscribedFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("subscribed", false, "Override the stored subscription flag for this run")
}

func subscribedOverride(cmd *cobra.Command) mo.Option[bool] {
	if !cmd.Flags().Changed("subscribed") {
		return mo.None[bool]()
	}
	return mo.Some(lo.Must(cmd.Flags().GetBool("subscribed")))
}

var rootCmd = &cobra.Command{
	Use:   constant.Mango,
	Short: "Terminal HLS player with ad-supported and subscribed playback",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiYellow).Render("    - Terminal HLS player with ad-supported and subscribed playback"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		options := tui.Options{
			History:    lo.Must(cmd.Flags().GetBool("history")),
			Subscribed: subscribedOverride(cmd),
		}
		handleErr(tui.Run(&options))
	},
}

// Execute runs the root command.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

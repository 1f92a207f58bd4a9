package cmd

import (
	"fmt"

	"github.com/mangomedia/mango/catalog"
	"github.com/mangomedia/mango/color"
	"github.com/mangomedia/mango/icon"
	"github.com/mangomedia/mango/key"
	"github.com/mangomedia/mango/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().BoolP("json", "j", false, "Print the catalog as JSON")
	catalogCmd.Flags().Bool("schema", false, "Print the JSON schema of the catalog")
	catalogCmd.Flags().StringP("find", "f", "", "Only list entries matching the query")
	catalogCmd.MarkFlagsMutuallyExclusive("json", "schema")
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the home screen catalog",
	Run: func(cmd *cobra.Command, args []string) {
		c := catalog.New(viper.GetString(key.CatalogSampleURL))

		switch {
		case lo.Must(cmd.Flags().GetBool("schema")):
			schema, err := catalog.Schema()
			handleErr(err)
			fmt.Println(string(schema))
			return
		case lo.Must(cmd.Flags().GetBool("json")):
			data, err := c.JSON()
			handleErr(err)
			fmt.Println(string(data))
			return
		}

		thumbnails := c.Thumbnails()
		if query := lo.Must(cmd.Flags().GetString("find")); query != "" {
			thumbnails = c.Find(query)
		}

		for _, t := range thumbnails {
			fmt.Printf(
				"%s %s %s\n",
				icon.Get(icon.Video),
				style.Fg(color.Purple)(t.ID),
				t.Title+" "+style.Faint(fmt.Sprintf("%dx%d", t.Width, t.Height)),
			)
		}
	},
}

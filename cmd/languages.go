package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"commentsweep/core"
)

var languagesJSONFlag bool

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the registered language profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		infos := core.LanguageInfos()

		if languagesJSONFlag {
			data, err := json.MarshalIndent(infos, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode languages: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetAutoWrapText(false)
		table.SetHeader([]string{"ID", "Aliases", "Doc Blocks", "Multi-Line", "Keywords"})
		for _, info := range infos {
			table.Append([]string{
				info.ID,
				strings.Join(info.Aliases, ", "),
				yesNo(info.HasDocBlock),
				yesNo(info.HasMulti),
				fmt.Sprintf("%d", info.KeywordCount),
			})
		}
		table.Render()
		fmt.Printf("%d language(s) registered.\n", len(infos))
		return nil
	},
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func init() {
	languagesCmd.Flags().BoolVar(&languagesJSONFlag, "json", false, "emit machine-readable JSON instead of a table")
	rootCmd.AddCommand(languagesCmd)
}

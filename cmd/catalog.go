package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shouni/go-meme-kit/internal/builder"
	"github.com/shouni/go-meme-kit/pkg/catalog"
)

var sampleCount int

// catalogCmd はオフラインのカタログを表示するのだ。API キーは不要なのだ。
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "オフラインのトピックとリアクションを表示します。",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := builder.LoadCatalog(loadConfig().CatalogFile)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if sampleCount > 0 {
			sel := catalog.NewSelector(cat, catalog.DefaultRandom())
			for i := 0; i < sampleCount; i++ {
				fmt.Fprintln(w, sel.Sample().String())
			}
			return nil
		}

		for _, c := range cat.Categories() {
			fmt.Fprintf(w, "%s:\n", c.Name)
			for _, t := range c.Topics {
				fmt.Fprintf(w, "  - %s\n", t)
			}
		}
		fmt.Fprintf(w, "Reactions: %s\n", strings.Join(cat.Reactions(), ", "))
		return nil
	},
}

func init() {
	catalogCmd.Flags().IntVar(&sampleCount, "sample", 0, "指定した数だけシナリオを無作為に生成して表示します。")
}

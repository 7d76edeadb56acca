// internal/cli/words.go
//
// `wordle words`: word list diagnostics.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) wordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words",
		Short: "Report the loaded word lists",
		RunE: func(c *cobra.Command, _ []string) error {
			dict, err := a.dictionary()
			if err != nil {
				return err
			}
			answers, allowed := dict.Stats()
			src := "embedded"
			if a.cfg.Words.AnswersFile != "" || a.cfg.Words.AllowedFile != "" {
				src = "files"
			}
			fmt.Fprintf(c.OutOrStdout(), "source:  %s\nanswers: %d\nallowed: %d\n", src, answers, allowed)
			return nil
		},
	}
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the skill keywords that are matched",
	Long:  "Reads the config and prints the active skill lexicon and match mode.",
	RunE:  runSkills,
}

func init() {
	rootCmd.AddCommand(skillsCmd)
}

func runSkills(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	lexicon, err := newLexicon(cfg.Skills)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid skills config: %v\n", err)
		os.Exit(1)
	}

	source := "built-in"
	if len(cfg.Skills.Keywords) > 0 {
		source = "config"
	}

	fmt.Printf("%-4s %s\n", "#", "Keyword")
	fmt.Println(strings.Repeat("─", 32))
	for i, kw := range lexicon.Keywords() {
		fmt.Printf("%-4d %s\n", i+1, kw)
	}
	fmt.Printf("\nTotal: %d keywords (%s, %s match)\n", len(lexicon.Keywords()), source, lexicon.Mode())
	return nil
}

// cmd/tools/kb-validator/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"chatbot-workers/pkg/kbfile"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	validatePath := validateCmd.String("path", "configs/knowledge-base.json", "Path to knowledge base file")

	statsCmd := flag.NewFlagSet("stats", flag.ExitOnError)
	statsPath := statsCmd.String("path", "configs/knowledge-base.json", "Path to knowledge base file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		file, err := kbfile.Load(*validatePath)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("OK: %s (version %s, %d entries)\n", *validatePath, file.Version, len(file.Entries))

	case "stats":
		statsCmd.Parse(os.Args[2:])
		file, err := kbfile.Load(*statsPath)
		if err != nil {
			fmt.Printf("Load failed: %v\n", err)
			os.Exit(1)
		}
		printStats(file)

	default:
		help()
		os.Exit(1)
	}
}

func printStats(file *kbfile.File) {
	perCategory := map[string]int{}
	withRequired := 0
	for _, entry := range file.Entries {
		perCategory[entry.Category]++
		if len(entry.RequiredKeywords) > 0 {
			withRequired++
		}
	}

	categories := make([]string, 0, len(perCategory))
	for c := range perCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	fmt.Printf("Knowledge base version %s, last updated %s\n", file.Version, file.LastUpdated)
	fmt.Printf("Entries: %d (%d with required keywords)\n", len(file.Entries), withRequired)
	for _, c := range categories {
		fmt.Printf("  %-12s %d\n", c, perCategory[c])
	}
}

func help() {
	fmt.Println("Usage: kb-validator <command> [flags]")
	fmt.Println("Commands:")
	fmt.Println("  validate  Validate a knowledge base file against the schema")
	fmt.Println("  stats     Print entry counts per category")
}

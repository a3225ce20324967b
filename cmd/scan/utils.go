package scan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/scan-io-git/depscout/internal/categorizer"
	"github.com/scan-io-git/depscout/internal/inventory"
	"github.com/scan-io-git/depscout/pkg/shared/config"
)

// loadCategorizer builds the optional categorizer from the flag or the
// configuration file. A missing taxonomy is fine; a broken one is fatal.
func loadCategorizer(options *RunOptionsScan, cfg *config.Config) (*categorizer.Categorizer, *categorizer.Config, error) {
	path := config.SetThen(options.CategoriesPath, cfg.Scan.Categories)
	if path == "" {
		return nil, nil, nil
	}

	catConfig, err := categorizer.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return categorizer.New(catConfig), catConfig, nil
}

// printSummary writes a colored scan overview to the terminal.
func printSummary(result *inventory.ScanResult) {
	title := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgWhite, color.Bold)

	title.Println("Scan summary")

	if len(result.Languages) > 0 {
		languages := make([]string, 0, len(result.Languages))
		for language := range result.Languages {
			languages = append(languages, language)
		}
		sort.Slice(languages, func(i, j int) bool {
			return result.Languages[languages[i]] > result.Languages[languages[j]]
		})
		parts := make([]string, 0, len(languages))
		for _, language := range languages {
			parts = append(parts, fmt.Sprintf("%s %.2f%%", language, result.Languages[language]))
		}
		label.Print("Languages:       ")
		fmt.Println(strings.Join(parts, ", "))
	}

	if len(result.PackageManagers) > 0 {
		label.Print("Package managers: ")
		fmt.Println(strings.Join(result.PackageManagers, ", "))
	}

	label.Print("Dependencies:    ")
	fmt.Println(len(result.Dependencies))
	label.Print("API calls:       ")
	fmt.Println(len(result.APICalls))
	label.Print("Infrastructure:  ")
	fmt.Println(len(result.Infrastructure))

	if result.Categories != nil {
		title.Println("Categories")
		for _, category := range result.CategoryOrder {
			deps := result.Categories[category]
			if len(deps) == 0 {
				continue
			}
			names := make([]string, 0, len(deps))
			for _, dep := range deps {
				names = append(names, dep.Name)
			}
			fmt.Printf("  %s (%d): %s\n", category, len(deps), strings.Join(names, ", "))
		}
	}

	if len(result.Errors) > 0 {
		color.New(color.FgYellow, color.Bold).Printf("Warnings (%d)\n", len(result.Errors))
		for _, message := range result.Errors {
			color.Yellow("  %s", message)
		}
	}
}

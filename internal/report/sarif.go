package report

import (
	"fmt"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scan-io-git/depscout/internal/inventory"
)

const toolURI = "https://github.com/scan-io-git/depscout"

// WriteSARIF writes one SARIF result per dependency that landed in a
// restricted category, so policy findings plug into code-scanning uploads.
func WriteSARIF(result *inventory.ScanResult, restricted []string, outputFile string) error {
	reportSarif, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI("depscout", toolURI)

	for _, category := range restricted {
		deps, ok := result.Categories[category]
		if !ok {
			continue
		}

		ruleID := "restricted-dependency/" + category
		rule := run.AddRule(ruleID).
			WithDescription(fmt.Sprintf("Dependency belongs to the restricted category %q", category))

		for _, dep := range deps {
			location := sarif.NewLocation().WithPhysicalLocation(
				sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewArtifactLocation().WithUri(dep.SourceFile)),
			)
			message := fmt.Sprintf("Dependency %q is in restricted category %q", dep.Name, category)
			sarifResult := sarif.NewRuleResult(rule.ID).
				WithLevel("warning").
				WithMessage(sarif.NewTextMessage(message)).
				WithLocations([]*sarif.Location{location})
			run.AddResult(sarifResult)
		}
	}

	reportSarif.AddRun(run)

	if err := reportSarif.WriteFile(outputFile); err != nil {
		return fmt.Errorf("failed to write SARIF report: %w", err)
	}
	return nil
}

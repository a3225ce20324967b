// Package report renders a ScanResult into the supported output formats:
// JSON, HTML and SARIF.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/scan-io-git/depscout/internal/inventory"
)

// WriteJSON writes the scan result as indented JSON. The encoding round-trips:
// decoding the file reproduces the dependencies, languages and errors fields.
func WriteJSON(result *inventory.ScanResult, outputFile string) error {
	data, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal scan result: %w", err)
	}

	file, err := os.OpenFile(outputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed creating file: %w", err)
	}
	defer file.Close()

	datawriter := bufio.NewWriter(file)
	defer datawriter.Flush()

	if _, err := datawriter.Write(data); err != nil {
		return fmt.Errorf("error writing data to file: %w", err)
	}

	return nil
}

// ReadJSON loads a previously written JSON report.
func ReadJSON(inputFile string) (*inventory.ScanResult, error) {
	data, err := os.ReadFile(inputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	var result inventory.ScanResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &result, nil
}

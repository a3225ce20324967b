package orchestrator

import (
	"math"
	"path/filepath"
	"strings"
)

// languageByExtension buckets files into languages for the percentage report.
var languageByExtension = map[string]string{
	".py":    "Python",
	".js":    "JavaScript",
	".jsx":   "JavaScript",
	".mjs":   "JavaScript",
	".ts":    "TypeScript",
	".tsx":   "TypeScript",
	".go":    "Go",
	".java":  "Java",
	".kt":    "Kotlin",
	".scala": "Scala",
	".rb":    "Ruby",
	".rs":    "Rust",
	".c":     "C",
	".h":     "C",
	".cpp":   "C++",
	".cc":    "C++",
	".hpp":   "C++",
	".cs":    "C#",
	".php":   "PHP",
	".swift": "Swift",
	".sh":    "Shell",
	".sql":   "SQL",
	".html":  "HTML",
	".css":   "CSS",
}

// detectLanguages computes the percentage of recognized files per language.
// Files with no language mapping carry no signal and are left out of the
// denominator.
func detectLanguages(paths []string) map[string]float64 {
	counts := make(map[string]int)
	total := 0
	for _, path := range paths {
		language, ok := languageByExtension[strings.ToLower(filepath.Ext(path))]
		if !ok {
			continue
		}
		counts[language]++
		total++
	}

	languages := make(map[string]float64, len(counts))
	if total == 0 {
		return languages
	}
	for language, count := range counts {
		percent := float64(count) / float64(total) * 100
		languages[language] = math.Round(percent*100) / 100
	}
	return languages
}

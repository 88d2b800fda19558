package patch

import "strings"

// Language guesses the source language of a path from its extension.
// Unknown extensions return "" and restrict checking to generic rules.
func Language(filePath string) string {
	parts := strings.Split(filePath, ".")
	if len(parts) < 2 {
		return ""
	}

	ext := strings.ToLower(parts[len(parts)-1])

	languageMap := map[string]string{
		"c":    "c",
		"h":    "c",
		"cpp":  "cpp",
		"cc":   "cpp",
		"cxx":  "cpp",
		"hpp":  "cpp",
		"go":   "go",
		"java": "java",
		"js":   "javascript",
		"ts":   "typescript",
		"rs":   "rust",
		"py":   "python",
		"sh":   "bash",
	}

	if language, exists := languageMap[ext]; exists {
		return language
	}

	return ""
}

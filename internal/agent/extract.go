package agent

import (
	"regexp"
	"sort"
	"strings"
)

// fallbackErrorCap bounds how many stdout lines the error fallback keeps.
const fallbackErrorCap = 3

var (
	filePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:created|modified|updated|wrote|edited)\s+['"]?([^\s'"]+\.\w+)['"]?`),
		regexp.MustCompile(`(?i)(?:writing to|saving)\s+['"]?([^\s'"]+\.\w+)['"]?`),
	}

	// Matches git's porcelain commit confirmation: [branch hash] message.
	commitPattern = regexp.MustCompile(`(?m)^\[[^\]\n]+\s([0-9a-f]{7,40})\]\s+(.*)$`)

	errorKeywords   = []string{"error", "failed"}
	warningKeywords = []string{"warn", "deprecated"}
)

// ExtractFiles mines reported file paths out of free-form agent output.
// Paths are deduplicated and returned sorted so results are stable across
// runs regardless of how often the tool repeats itself.
func ExtractFiles(text string) []string {
	if text == "" {
		return nil
	}

	seen := make(map[string]bool)
	var files []string
	for _, pattern := range filePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			path := match[1]
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
		}
	}
	sort.Strings(files)
	return files
}

// ExtractCommits returns "hash message" entries for every git commit
// confirmation found in the text, in the order they appear.
func ExtractCommits(text string) []string {
	var commits []string
	for _, match := range commitPattern.FindAllStringSubmatch(text, -1) {
		commits = append(commits, match[1]+" "+strings.TrimSpace(match[2]))
	}
	return commits
}

// ExtractErrors collects error messages, preferring an explicit structured
// payload over scanning the text for failure vocabulary.
func ExtractErrors(payload map[string]any, text string) []string {
	if payload != nil {
		if msgs := payloadStrings(payload, "errors"); len(msgs) > 0 {
			return msgs
		}
		if msg, ok := payload["error"].(string); ok && strings.TrimSpace(msg) != "" {
			return []string{strings.TrimSpace(msg)}
		}
	}
	return scanLines(text, errorKeywords)
}

// ExtractWarnings is the warning-side counterpart to ExtractErrors.
func ExtractWarnings(payload map[string]any, text string) []string {
	if payload != nil {
		if msgs := payloadStrings(payload, "warnings"); len(msgs) > 0 {
			return msgs
		}
	}
	return scanLines(text, warningKeywords)
}

// scanLines returns trimmed lines containing any of the keywords,
// case-insensitively.
func scanLines(text string, keywords []string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				lines = append(lines, strings.TrimSpace(line))
				break
			}
		}
	}
	return lines
}

func payloadStrings(payload map[string]any, key string) []string {
	raw, ok := payload[key].([]any)
	if !ok {
		return nil
	}
	var msgs []string
	for _, item := range raw {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			msgs = append(msgs, strings.TrimSpace(s))
		}
	}
	return msgs
}

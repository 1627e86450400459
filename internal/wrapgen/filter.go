package wrapgen

// FilterLines returns lines with every guard line removed. Matching is exact
// and case-sensitive on the trimmed line; kept lines are not modified.
func FilterLines(lines []string, guards GuardTokens) []string {
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		if guards.Contains(line) {
			continue
		}
		filtered = append(filtered, line)
	}
	return filtered
}

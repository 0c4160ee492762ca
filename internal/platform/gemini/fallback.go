package gemini

import "strings"

// actionWords are scanned for when condensing a long description around
// its main verb.
var actionWords = map[string]bool{
	"design": true, "implement": true, "create": true, "build": true,
	"develop": true, "test": true, "deploy": true, "configure": true,
	"setup": true, "install": true, "manage": true, "analyze": true,
	"review": true, "optimize": true, "fix": true, "debug": true,
	"update": true, "upgrade": true, "migrate": true, "integrate": true,
}

// simpleSummary condenses a description without calling the model. Short
// descriptions about common activities get a canned expansion; long ones
// are trimmed around the first action word found, or truncated.
func simpleSummary(description string) string {
	description = strings.TrimSpace(description)
	lower := strings.ToLower(description)

	if len(description) <= 30 {
		switch {
		case strings.Contains(lower, "ui") && strings.Contains(lower, "test"):
			return "Implement UI changes and create comprehensive test cases"
		case strings.Contains(lower, "ui"):
			return "Implement user interface changes and improvements"
		case strings.Contains(lower, "test"):
			return "Create and execute test cases for the application"
		case strings.Contains(lower, "design"):
			return "Design and create visual components and layouts"
		case strings.Contains(lower, "implement"):
			return "Implement the specified functionality and features"
		case len(description) <= 10:
			return "Implement " + description
		default:
			return description
		}
	}

	if len(description) <= 60 {
		return description
	}

	words := strings.Fields(description)

	for _, word := range words {
		action := strings.ToLower(word)
		if !actionWords[action] {
			continue
		}
		_, rest, found := strings.Cut(lower, action)
		if !found {
			break
		}
		if len(rest) > 40 {
			rest = rest[:40]
		}
		summary := strings.TrimSpace(title(action) + " " + strings.TrimSpace(rest))
		if len(summary) > maxSummaryLength {
			summary = summary[:maxSummaryLength-3] + "..."
		}
		return summary
	}

	if len(words) <= 8 {
		return description
	}

	limit := 12
	if len(words) < limit {
		limit = len(words)
	}
	summary := strings.Join(words[:limit], " ")
	if len(words) > 12 {
		summary += "..."
	}
	if !strings.HasSuffix(summary, ".") {
		summary += "."
	}
	return summary
}

// fallbackSubtasks returns a canned breakdown keyed on the kind of work
// the description mentions.
func fallbackSubtasks(description string) []string {
	lower := strings.ToLower(description)

	containsAny := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}

	switch {
	case containsAny("ui", "interface") && containsAny("test", "testing"):
		return []string{
			"Analyze current UI components and identify areas for improvement",
			"Design and implement UI changes based on requirements",
			"Create comprehensive test cases for UI functionality",
			"Implement automated UI testing",
			"Validate changes across different browsers and devices",
		}
	case containsAny("design", "ui", "interface"):
		return []string{
			"Research design requirements and user needs",
			"Create wireframes and mockups",
			"Design visual components and layouts",
			"Implement responsive design",
			"Test design across different devices",
		}
	case containsAny("develop", "build", "create", "implement"):
		return []string{
			"Plan the implementation approach",
			"Set up development environment",
			"Write core functionality",
			"Add error handling and validation",
			"Test and debug the implementation",
		}
	case containsAny("test", "testing", "qa"):
		return []string{
			"Create test plan and test cases",
			"Set up testing environment",
			"Execute functional tests",
			"Perform integration testing",
			"Document test results and issues",
		}
	case containsAny("deploy", "release", "production"):
		return []string{
			"Prepare production environment",
			"Configure deployment settings",
			"Deploy to staging environment",
			"Perform final testing",
			"Deploy to production",
		}
	default:
		return []string{
			"Research and gather requirements",
			"Plan the approach and timeline",
			"Execute the main task",
			"Review and validate results",
			"Document the completed work",
		}
	}
}

// title uppercases the first byte of an ASCII word.
func title(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

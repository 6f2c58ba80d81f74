package parser

import (
	"regexp"
	"strings"
	"time"
)

// ParsedTask represents a task parsed from natural language.
type ParsedTask struct {
	Title    string
	Subject  string
	Priority string
	DueDate  *time.Time
	Errors   []string
}

// ParseTitle extracts metadata from a task title using natural syntax
// Syntax: "Finish essay @literature +high due:3 days"
func ParseTitle(input string) ParsedTask {
	result := ParsedTask{
		Title:  input,
		Errors: []string{},
	}

	// Extract subject (@subject-name)
	subjectRegex := regexp.MustCompile(`@([a-zA-Z0-9_-]+)`)
	if m := subjectRegex.FindStringSubmatch(input); len(m) > 1 {
		result.Subject = m[1]
		input = subjectRegex.ReplaceAllString(input, "")
	}

	// Extract priority (+high, +medium, +low)
	priorityRegex := regexp.MustCompile(`\+([a-zA-Z0-9]+)`)
	if m := priorityRegex.FindStringSubmatch(input); len(m) > 1 {
		priority, ok := NormalizePriority(m[1])
		if ok {
			result.Priority = priority
		} else {
			result.Errors = append(result.Errors, "Invalid priority '"+m[1]+"'. Use: low, medium, high, 1, 2, or 3")
		}
		input = priorityRegex.ReplaceAllString(input, "")
	}

	// Extract due date (due:15/12/2026; relative forms go through flags)
	dueRegex := regexp.MustCompile(`due:([^\s]+)`)
	if m := dueRegex.FindStringSubmatch(input); len(m) > 1 {
		due, err := ParseDueDate(m[1])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid due date '"+m[1]+"': "+err.Error())
		} else {
			result.DueDate = due
		}
		input = dueRegex.ReplaceAllString(input, "")
	}

	result.Title = strings.Join(strings.Fields(input), " ")
	return result
}

// NormalizePriority maps user input onto the canonical priority names.
func NormalizePriority(input string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "low", "1":
		return "low", true
	case "medium", "med", "2":
		return "medium", true
	case "high", "3":
		return "high", true
	case "":
		return "", true
	}
	return "", false
}

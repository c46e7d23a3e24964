package aggregate

import (
	"strconv"
	"strings"
	"time"

	"github.com/AintJierie/GitVista/model"
)

// Keyword sets tested in priority order: the first matching category wins
// and a commit is never counted twice.
var (
	featureKeywords       = []string{"feature", "add", "new"}
	bugfixKeywords        = []string{"fix", "bug", "resolve"}
	improvementKeywords   = []string{"improve", "refactor", "optimize"}
	documentationKeywords = []string{"docs", "readme", "comment"}
)

const maxOtherEntries = 10

// BuildReleaseNotes categorizes the commits by keyword, counts distinct
// contributors and renders the Markdown document. Commits are matched on
// their lower-cased first message line.
func BuildReleaseNotes(repo, version string, commits []model.Commit, releaseDate time.Time) model.ReleaseNotes {
	notes := model.ReleaseNotes{
		Repo:         repo,
		Version:      version,
		ReleaseDate:  releaseDate.Format("2006-01-02"),
		TotalCommits: len(commits),
	}

	contributors := make(map[string]struct{})

	for _, commit := range commits {
		subject := firstLine(commit.Message)

		if commit.AuthorName != "" {
			contributors[commit.AuthorName] = struct{}{}
		}

		switch {
		case containsAny(subject, featureKeywords):
			notes.Features = append(notes.Features, subject)
		case containsAny(subject, bugfixKeywords):
			notes.BugFixes = append(notes.BugFixes, subject)
		case containsAny(subject, improvementKeywords):
			notes.Improvements = append(notes.Improvements, subject)
		case containsAny(subject, documentationKeywords):
			notes.Documentation = append(notes.Documentation, subject)
		default:
			notes.Other = append(notes.Other, subject)
		}
	}

	notes.Contributors = len(contributors)
	notes.Markdown = renderMarkdown(notes)

	return notes
}

func firstLine(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		return message[:idx]
	}

	return message
}

func containsAny(subject string, keywords []string) bool {
	lowered := strings.ToLower(subject)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}

	return false
}

// renderMarkdown builds the release document with a fixed section order:
// Features, Bug Fixes, Improvements, Documentation, Other. The Other section
// is truncated to the first 10 entries. Empty sections are omitted.
func renderMarkdown(notes model.ReleaseNotes) string {
	var doc strings.Builder

	doc.WriteString("# " + notes.Repo + " " + notes.Version + "\n\n")
	doc.WriteString("**Release Date:** " + notes.ReleaseDate + "\n")
	doc.WriteString("**Total Commits:** " + strconv.Itoa(notes.TotalCommits) + "\n")
	doc.WriteString("**Contributors:** " + strconv.Itoa(notes.Contributors) + "\n\n")

	other := notes.Other
	if len(other) > maxOtherEntries {
		other = other[:maxOtherEntries]
	}

	writeSection(&doc, "Features", notes.Features)
	writeSection(&doc, "Bug Fixes", notes.BugFixes)
	writeSection(&doc, "Improvements", notes.Improvements)
	writeSection(&doc, "Documentation", notes.Documentation)
	writeSection(&doc, "Other Changes", other)

	return doc.String()
}

func writeSection(doc *strings.Builder, title string, entries []string) {
	if len(entries) == 0 {
		return
	}

	doc.WriteString("## " + title + "\n")
	for _, entry := range entries {
		doc.WriteString("- " + entry + "\n")
	}
	doc.WriteString("\n")
}

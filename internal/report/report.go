// Package report renders compliance results for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/codehealth/glcheck/internal/compliance"
	"github.com/codehealth/glcheck/internal/gitlab"
)

const barWidth = 24

// PrintProject prints the project information block: name, URL, stars,
// forks, and last activity truncated to a date.
func PrintProject(p *gitlab.Project, baseURL string) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Printf("\n%s\n", cyan("=== Project Information ==="))
	fmt.Printf("  Project:       %s\n", p.NameWithNamespace)
	fmt.Printf("  URL:           %s\n", p.URL(baseURL))
	fmt.Printf("  Stars:         %d\n", p.StarCount)
	fmt.Printf("  Forks:         %d\n", p.ForksCount)
	if date := p.LastActivityDate(); date != "" {
		fmt.Printf("  Last activity: %s\n", date)
	} else {
		fmt.Printf("  Last activity: %s\n", gray("unknown"))
	}
}

// PrintStatus prints the score, badge, verdict and the categorized
// pass/fail checklist.
func PrintStatus(status compliance.Status) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()

	score := status.Score()
	total := status.Total()

	badge := red
	if score == total {
		badge = green
	} else if float64(score) >= float64(total)*0.7 {
		badge = yellow
	}

	fmt.Printf("\n%s\n", cyan("=== Compliance Score ==="))
	fmt.Printf("  %s %s\n", progressBar(score, total), badge(fmt.Sprintf("%d/%d", score, total)))
	fmt.Printf("  Verdict: %s\n", verdictLine(status.Tier()))

	fmt.Printf("\n%s\n", cyan("=== Detailed Compliance Check ==="))

	printCategory("Required Files", compliance.RequiredFiles, status)
	printCategory("GitLab Templates", []string{
		compliance.KeyIssueTemplates,
		compliance.KeyMergeRequestTemplates,
	}, status)
	printCategory("Project Metadata", []string{
		compliance.KeyDescriptionPresent,
		compliance.KeyTagsPresent,
	}, status)
	fmt.Println()
}

func printCategory(title string, keys []string, status compliance.Status) {
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Printf("  %s\n", yellow(title+":"))
	for _, key := range keys {
		present, ok := status[key]
		if !ok {
			continue
		}
		if present {
			fmt.Printf("    %s %s\n", green("✓"), DisplayName(key))
		} else {
			fmt.Printf("    %s %s\n", red("✗"), DisplayName(key))
		}
	}
}

func verdictLine(tier compliance.Tier) string {
	switch tier {
	case compliance.TierExcellent:
		return color.GreenString("%s — project meets all compliance requirements", string(tier))
	case compliance.TierGood:
		return color.GreenString("%s — project meets most compliance requirements", string(tier))
	case compliance.TierNeedsImprovement:
		return color.YellowString("%s — several requirements are missing", string(tier))
	default:
		return color.RedString("%s — many important files are missing", string(tier))
	}
}

// DisplayName converts a requirement key into its human-readable label.
func DisplayName(key string) string {
	switch key {
	case compliance.KeyIssueTemplates:
		return "Issue Templates"
	case compliance.KeyMergeRequestTemplates:
		return "Merge Request Templates"
	case compliance.KeyDescriptionPresent:
		return "Description Present"
	case compliance.KeyTagsPresent:
		return "Tags Present"
	default:
		return key
	}
}

func progressBar(score, total int) string {
	if total <= 0 {
		return "[" + strings.Repeat("─", barWidth) + "]"
	}
	filled := score * barWidth / total
	return "[" + strings.Repeat("█", filled) + strings.Repeat("─", barWidth-filled) + "]"
}

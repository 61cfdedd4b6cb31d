// Package observability provides formatted text output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/skillscout/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted text output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// PrintJobs outputs a summary of each job listing.
func (p *Printer) PrintJobs(query string, jobs []types.JobListing) {
	title := fmt.Sprintf("JOBS: %s", query)
	if len(jobs) == 0 {
		p.printBox(title, "No jobs found")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d jobs\n\n", len(jobs)))

	count := min(len(jobs), maxItemsToShow)
	for i := 0; i < count; i++ {
		job := jobs[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, job.Title))
		sb.WriteString(fmt.Sprintf("    %s · %s", job.EmployerName, job.Location))
		if jobType := types.Deref(job.JobType); jobType != "" {
			sb.WriteString(fmt.Sprintf(" · %s", jobType))
		}
		sb.WriteString("\n")
		if salary := formatSalary(job.SalaryMin, job.SalaryMax); salary != "" {
			sb.WriteString(fmt.Sprintf("    Salary: %s\n", salary))
		}
		if posted := types.Deref(job.DatePosted); posted != "" {
			sb.WriteString(fmt.Sprintf("    Posted: %s\n", posted))
		}
		sb.WriteString(fmt.Sprintf("    %s\n", job.ApplyURL))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(jobs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more jobs", len(jobs)-maxItemsToShow))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

func formatSalary(lo, hi *float64) string {
	switch {
	case lo != nil && hi != nil && *lo != *hi:
		return fmt.Sprintf("$%.0f - $%.0f", *lo, *hi)
	case lo != nil:
		return fmt.Sprintf("$%.0f", *lo)
	case hi != nil:
		return fmt.Sprintf("up to $%.0f", *hi)
	default:
		return ""
	}
}

// PrintVideos outputs each video with its difficulty tier.
func (p *Printer) PrintVideos(query string, videos []types.VideoResource) {
	title := fmt.Sprintf("VIDEOS: %s", query)
	if len(videos) == 0 {
		p.printBox(title, "No videos found")
		return
	}

	var sb strings.Builder
	count := min(len(videos), maxItemsToShow)
	for i := 0; i < count; i++ {
		v := videos[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, v.Title))
		sb.WriteString(fmt.Sprintf("    [%s] %s\n", v.Difficulty, v.URL))
	}

	if len(videos) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more videos", len(videos)-maxItemsToShow))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

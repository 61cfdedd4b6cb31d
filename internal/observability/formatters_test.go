package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/skillscout/internal/types"
)

func TestPrintJobs(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	lo, hi := 90000.0, 120000.0
	jobs := []types.JobListing{
		{
			Title:        "Senior Go Engineer",
			EmployerName: "Acme Corp",
			Location:     "Remote",
			ApplyURL:     "https://remoteok.com/remote-jobs/1",
			SalaryMin:    &lo,
			SalaryMax:    &hi,
			JobType:      types.StringPtr(types.JobTypeFullTime),
			DatePosted:   types.StringPtr("2026-03-01T10:00:00+00:00"),
		},
		{
			Title:        "Rust Contractor",
			EmployerName: "Oxide",
			Location:     "Berlin (Remote)",
			ApplyURL:     "https://remoteok.com/remote-jobs/2",
		},
	}

	p.PrintJobs("go", jobs)
	output := buf.String()

	assert.Contains(t, output, "JOBS: go")
	assert.Contains(t, output, "Found 2 jobs")
	assert.Contains(t, output, "#1  Senior Go Engineer")
	assert.Contains(t, output, "Acme Corp · Remote · Full-time")
	assert.Contains(t, output, "$90000 - $120000")
	assert.Contains(t, output, "Posted: 2026-03-01")
	assert.Contains(t, output, "#2  Rust Contractor")
	assert.Contains(t, output, "Oxide · Berlin (Remote)")
	assert.NotContains(t, output, "Berlin (Remote) ·")
	assert.Equal(t, 1, strings.Count(output, "Posted:"))
	assert.NotContains(t, output, "more jobs")
}

func TestPrintJobs_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintJobs("cobol", nil)
	assert.Contains(t, buf.String(), "No jobs found")
}

func TestPrintJobs_Overflow(t *testing.T) {
	var buf bytes.Buffer
	jobs := make([]types.JobListing, maxItemsToShow+3)
	for i := range jobs {
		jobs[i] = types.JobListing{Title: fmt.Sprintf("Job %d", i)}
	}

	NewPrinter(&buf).PrintJobs("go", jobs)
	assert.Contains(t, buf.String(), "... and 3 more jobs")
}

func TestPrintVideos(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintVideos("rust", []types.VideoResource{
		{Title: "Rust for Beginners", URL: "https://www.youtube.com/watch?v=abc", Difficulty: types.DifficultyBeginner},
	})
	output := buf.String()

	assert.Contains(t, output, "VIDEOS: rust")
	assert.Contains(t, output, "[beginner] https://www.youtube.com/watch?v=abc")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 200))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestFormatSalary(t *testing.T) {
	v := func(f float64) *float64 { return &f }

	assert.Equal(t, "", formatSalary(nil, nil))
	assert.Equal(t, "$50000", formatSalary(v(50000), v(50000)))
	assert.Equal(t, "$50000 - $60000", formatSalary(v(50000), v(60000)))
	assert.Equal(t, "up to $70000", formatSalary(nil, v(70000)))
}

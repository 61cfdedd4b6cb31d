// Package types provides the records skillscout searches return and the requests that drive them.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobListing is a normalized job posting from an upstream job board.
type JobListing struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	EmployerName string   `json:"employer_name"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	ApplyURL     string   `json:"apply_url"`
	SalaryMin    *float64 `json:"salary_min"`
	SalaryMax    *float64 `json:"salary_max"`
	DatePosted   *string  `json:"date_posted"`
	Remote       bool     `json:"remote"`
	JobType      *string  `json:"job_type"`
	EmployerLogo *string  `json:"employer_logo"`
}

// Job type labels produced by classification.
const (
	JobTypeFullTime   = "Full-time"
	JobTypePartTime   = "Part-time"
	JobTypeContract   = "Contract"
	JobTypeInternship = "Internship"
	JobTypeTemporary  = "Temporary"
	JobTypeFreelance  = "Freelance"
)

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string, or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

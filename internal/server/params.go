package server

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/skillscout/internal/types"
)

// JobsParams are the query parameters of GET /api/v1/jobs.
type JobsParams struct {
	Query      string `validate:"required,max=200"`
	Limit      *int   `validate:"omitnil,min=1"`
	Location   string `validate:"max=200"`
	RemoteOnly bool
	JobType    string `validate:"omitempty,oneof=full-time part-time contract internship temporary freelance"`
}

// VideoParams are the query parameters of GET /api/v1/resources/video.
type VideoParams struct {
	Query   string `validate:"required,max=200"`
	Limit   *int   `validate:"omitnil,min=1"`
	Sorting string `validate:"max=50"`
}

var validate = validator.New()

// bindJobsParams reads and validates job search parameters.
func bindJobsParams(values url.Values) (*JobsParams, error) {
	p := &JobsParams{
		Query:    strings.TrimSpace(values.Get("query")),
		Location: strings.TrimSpace(values.Get("location")),
		JobType:  strings.ToLower(strings.TrimSpace(values.Get("job_type"))),
	}

	var err error
	if p.Limit, err = intParam(values, "limit"); err != nil {
		return nil, err
	}
	if raw := values.Get("remote_only"); raw != "" {
		if p.RemoteOnly, err = strconv.ParseBool(raw); err != nil {
			return nil, &ErrValidation{Field: "remote_only", Message: "must be a boolean"}
		}
	}

	if err := validateStruct(p); err != nil {
		return nil, err
	}
	return p, nil
}

// bindVideoParams reads and validates video search parameters.
func bindVideoParams(values url.Values) (*VideoParams, error) {
	p := &VideoParams{
		Query:   strings.TrimSpace(values.Get("query")),
		Sorting: strings.TrimSpace(values.Get("sorting")),
	}

	var err error
	if p.Limit, err = intParam(values, "limit"); err != nil {
		return nil, err
	}

	if err := validateStruct(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Request converts the parameters into a search request, applying the
// default limit and clamping to maxLimit.
func (p *JobsParams) Request(l Limits) types.SearchRequest {
	return types.SearchRequest{
		Query:      p.Query,
		Limit:      effectiveLimit(p.Limit, l.DefaultJobLimit, l.MaxLimit),
		Location:   p.Location,
		RemoteOnly: p.RemoteOnly,
		JobType:    p.JobType,
	}
}

// Request converts the parameters into a video request.
func (p *VideoParams) Request(l Limits) types.VideoRequest {
	return types.VideoRequest{
		Query:   p.Query,
		Limit:   effectiveLimit(p.Limit, l.DefaultVideoLimit, l.MaxLimit),
		Sorting: p.Sorting,
	}
}

func effectiveLimit(limit *int, def, maxLimit int) int {
	if limit == nil {
		return min(def, maxLimit)
	}
	return min(*limit, maxLimit)
}

func intParam(values url.Values, name string) (*int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &ErrValidation{Field: name, Message: "must be an integer"}
	}
	return &n, nil
}

// validateStruct runs the validator and reports the first failure.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		return &ErrValidation{Field: paramName(fe.Field()), Message: validationMessage(fe)}
	}
	return fmt.Errorf("failed to validate parameters: %w", err)
}

var paramNames = map[string]string{
	"Query":      "query",
	"Limit":      "limit",
	"Location":   "location",
	"RemoteOnly": "remote_only",
	"JobType":    "job_type",
	"Sorting":    "sorting",
}

func paramName(field string) string {
	if name, ok := paramNames[field]; ok {
		return name
	}
	return field
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return fe.Tag()
	}
}

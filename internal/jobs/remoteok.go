package jobs

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// DefaultEndpoint is the RemoteOK public feed.
const DefaultEndpoint = "https://remoteok.com/api"

const (
	remoteOKBase     = "https://remoteok.com"
	remoteOKLogoBase = "https://remoteok.com/assets/img/jobs/"
)

// remoteOKJob is one element of the feed. Every field is optional upstream.
type remoteOKJob struct {
	ID          flexString `json:"id"`
	Position    string     `json:"position"`
	Company     string     `json:"company"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	Date        string     `json:"date"`
	Salary      flexString `json:"salary"`
	Tags        []string   `json:"tags"`
	Logo        string     `json:"logo"`
}

// flexString accepts a JSON string or number. null leaves it empty.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("expected string or number")
	}
	*f = flexString(n.String())
	return nil
}

// decodeFeed parses the feed body. The first element is a legal notice, not
// a job, and is dropped. Elements that fail to decode are counted and skipped.
func decodeFeed(body []byte) (jobs []remoteOKJob, skipped int, err error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, 0, err
	}
	if len(raw) <= 1 {
		return nil, 0, nil
	}

	jobs = make([]remoteOKJob, 0, len(raw)-1)
	for _, elem := range raw[1:] {
		var j remoteOKJob
		if err := json.Unmarshal(elem, &j); err != nil {
			skipped++
			continue
		}
		jobs = append(jobs, j)
	}
	return jobs, skipped, nil
}

func absoluteURL(u string) string {
	if u == "" || strings.HasPrefix(u, "http") {
		return u
	}
	return remoteOKBase + u
}

func logoURL(logo string) *string {
	if logo == "" {
		return nil
	}
	if strings.HasPrefix(logo, "http") {
		return &logo
	}
	abs := remoteOKLogoBase + logo
	return &abs
}

package fetch

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// EmbeddedJSON finds the inline <script> whose text contains marker, decodes
// the JSON value that immediately follows the marker into dst, and requires
// the value to be terminated by terminator (ignoring whitespace).
//
// A page without the marker or terminator yields a KindExtraction error;
// malformed JSON yields KindParse.
func EmbeddedJSON(pageURL, html, marker, terminator string, dst any) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return &Error{Kind: KindParse, URL: pageURL, Message: "failed to parse HTML", Cause: err}
	}

	var payload string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if idx := strings.Index(text, marker); idx >= 0 {
			payload = text[idx+len(marker):]
			return false
		}
		return true
	})
	if payload == "" {
		return &Error{Kind: KindExtraction, URL: pageURL, Message: fmt.Sprintf("marker %q not found", marker)}
	}

	dec := json.NewDecoder(strings.NewReader(payload))
	if err := dec.Decode(dst); err != nil {
		return &Error{Kind: KindParse, URL: pageURL, Message: "embedded JSON is malformed", Cause: err}
	}

	rest := strings.TrimSpace(payload[dec.InputOffset():])
	if terminator != "" && !strings.HasPrefix(rest, terminator) {
		return &Error{Kind: KindExtraction, URL: pageURL, Message: fmt.Sprintf("embedded JSON not terminated by %q", terminator)}
	}
	return nil
}

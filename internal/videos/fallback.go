package videos

import (
	"strings"

	"github.com/jonathan/skillscout/internal/types"
)

// DefaultVideoID is served when no keyword in the fallback table matches.
const DefaultVideoID = "dQw4w9WgXcQ"

type fallbackVideo struct {
	keyword string
	id      string
	title   string
}

// fallbackVideos is checked in order; the first keyword found in the query wins.
var fallbackVideos = []fallbackVideo{
	{keyword: "rust", id: "BpPEoZW5IiY", title: "Rust Programming Course for Beginners"},
	{keyword: "python", id: "rfscVS0vtbw", title: "Learn Python - Full Course for Beginners"},
	{keyword: "javascript", id: "PkZNo7MFNFg", title: "Learn JavaScript - Full Course for Beginners"},
	{keyword: "react", id: "bMknfKXIFA8", title: "React Course - Beginner's Tutorial for React JavaScript Library"},
	{keyword: "golang", id: "YS4e4q9oBaU", title: "Learn Go Programming - Golang Tutorial for Beginners"},
}

var defaultVideo = fallbackVideo{id: DefaultVideoID, title: "Programming Tutorial"}

// Fallback returns the static result for query: a single record, so it
// satisfies any limit of one or more.
func Fallback(query string) []types.VideoResource {
	q := strings.ToLower(query)
	chosen := defaultVideo
	for _, fv := range fallbackVideos {
		if strings.Contains(q, fv.keyword) {
			chosen = fv
			break
		}
	}

	return []types.VideoResource{
		newResource(chosen.id, chosen.title, "https://i.ytimg.com/vi/"+chosen.id+"/hqdefault.jpg"),
	}
}

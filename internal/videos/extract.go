package videos

import (
	"strings"

	"github.com/jonathan/skillscout/internal/classify"
	"github.com/jonathan/skillscout/internal/fetch"
	"github.com/jonathan/skillscout/internal/types"
)

const (
	initialDataMarker     = "var ytInitialData = "
	initialDataTerminator = ";"
	watchURLPrefix        = "https://www.youtube.com/watch?v="
	sourceName            = "YouTube"
)

// initialData is the part of the results page's embedded state that holds
// search results. Everything else on the page is ignored.
type initialData struct {
	Contents struct {
		TwoColumnSearchResultsRenderer struct {
			PrimaryContents struct {
				SectionListRenderer struct {
					Contents []sectionContent `json:"contents"`
				} `json:"sectionListRenderer"`
			} `json:"primaryContents"`
		} `json:"twoColumnSearchResultsRenderer"`
	} `json:"contents"`
}

type sectionContent struct {
	ItemSectionRenderer *struct {
		Contents []struct {
			VideoRenderer *videoRenderer `json:"videoRenderer"`
		} `json:"contents"`
	} `json:"itemSectionRenderer"`
}

type videoRenderer struct {
	VideoID string `json:"videoId"`
	Title   struct {
		Runs []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"title"`
	Thumbnail struct {
		Thumbnails []struct {
			URL string `json:"url"`
		} `json:"thumbnails"`
	} `json:"thumbnail"`
}

// extract parses a results page into at most limit videos. Items without an
// id or title, such as ads, shelves and channels, are skipped.
func extract(pageURL, html string, limit int) ([]types.VideoResource, error) {
	var data initialData
	if err := fetch.EmbeddedJSON(pageURL, html, initialDataMarker, initialDataTerminator, &data); err != nil {
		return nil, err
	}

	sections := data.Contents.TwoColumnSearchResultsRenderer.PrimaryContents.SectionListRenderer.Contents
	if sections == nil {
		return nil, &fetch.Error{Kind: fetch.KindExtraction, URL: pageURL, Message: "search results key path absent"}
	}

	var out []types.VideoResource
	for _, section := range sections {
		if section.ItemSectionRenderer == nil {
			continue
		}
		for _, item := range section.ItemSectionRenderer.Contents {
			v := item.VideoRenderer
			if v == nil || v.VideoID == "" || len(v.Title.Runs) == 0 || v.Title.Runs[0].Text == "" {
				continue
			}
			var thumb string
			if len(v.Thumbnail.Thumbnails) > 0 {
				thumb = stripQuery(v.Thumbnail.Thumbnails[0].URL)
			}
			out = append(out, newResource(v.VideoID, v.Title.Runs[0].Text, thumb))
			if len(out) >= limit {
				return out, nil
			}
		}
	}
	return out, nil
}

func newResource(id, title, image string) types.VideoResource {
	return types.VideoResource{
		Title:        title,
		URL:          watchURLPrefix + id,
		VideoID:      id,
		ResourceType: types.ResourceTypeVideo,
		Free:         true,
		Image:        image,
		Source:       sourceName,
		Difficulty:   classify.Difficulty(title),
		Description:  "",
	}
}

func stripQuery(u string) string {
	if i := strings.IndexByte(u, '?'); i >= 0 {
		return u[:i]
	}
	return u
}

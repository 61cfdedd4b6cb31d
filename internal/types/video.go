package types

// Difficulty is the skill tier inferred from a tutorial's title.
type Difficulty string

// Difficulty tiers, from easiest to hardest.
const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ResourceTypeVideo is the only resource type the video search produces.
const ResourceTypeVideo = "video"

// VideoResource is a tutorial video found for a search.
type VideoResource struct {
	Title        string     `json:"title"`
	URL          string     `json:"url"`
	VideoID      string     `json:"video_id"`
	ResourceType string     `json:"resource_type"`
	Free         bool       `json:"free"`
	Image        string     `json:"image"`
	Source       string     `json:"source"`
	Difficulty   Difficulty `json:"difficulty"`
	Description  string     `json:"description"`
}

package classify

import (
	"strings"

	"github.com/jonathan/skillscout/internal/types"
)

type difficultyRule struct {
	keywords []string
	level    types.Difficulty
}

var difficultyRules = []difficultyRule{
	{keywords: []string{"beginner", "basics", "introduction", "101"}, level: types.DifficultyBeginner},
	{keywords: []string{"advanced", "expert", "master"}, level: types.DifficultyAdvanced},
}

// Difficulty infers a tutorial's tier from its title. Titles without a
// known keyword are intermediate.
func Difficulty(title string) types.Difficulty {
	t := strings.ToLower(title)
	for _, rule := range difficultyRules {
		for _, kw := range rule.keywords {
			if strings.Contains(t, kw) {
				return rule.level
			}
		}
	}
	return types.DifficultyIntermediate
}

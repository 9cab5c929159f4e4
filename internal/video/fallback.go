package video

import (
	"strings"

	"alcyxob/exercise-discovery/internal/domain"
)

type fallbackEntry struct {
	keyword string
	videos  []fallbackVideo
}

type fallbackVideo struct {
	id    string
	title string
}

// Ordered most specific first; the first keyword contained in the query wins.
var fallbackMapping = []fallbackEntry{
	{"front squat", []fallbackVideo{{"uYumuL_G_V0", "Front Squat Technique"}}},
	{"squat", []fallbackVideo{{"ultWZbUMPL8", "Barbell Back Squat Technique"}, {"aclHkVaku9U", "Bodyweight Squat"}}},
	{"romanian deadlift", []fallbackVideo{{"JCXUYuzwNrM", "Romanian Deadlift"}}},
	{"deadlift", []fallbackVideo{{"op9kVnSso6Q", "Conventional Deadlift Technique"}}},
	{"bench", []fallbackVideo{{"rT7DgCr-3pg", "Bench Press Technique"}}},
	{"push-up", []fallbackVideo{{"IODxDxX7oi4", "Push-Up Form"}}},
	{"push up", []fallbackVideo{{"IODxDxX7oi4", "Push-Up Form"}}},
	{"overhead press", []fallbackVideo{{"2yjwXTZQDDI", "Overhead Press"}}},
	{"pull-up", []fallbackVideo{{"eGo4IYlbE5g", "Pull-Up Technique"}}},
	{"pull up", []fallbackVideo{{"eGo4IYlbE5g", "Pull-Up Technique"}}},
	{"row", []fallbackVideo{{"FWJR5Ve8bnQ", "Bent-Over Barbell Row"}}},
	{"lunge", []fallbackVideo{{"QOVaHwm-Q6U", "Walking Lunge"}}},
	{"hip thrust", []fallbackVideo{{"SEdqd1n0cvg", "Barbell Hip Thrust"}}},
	{"box jump", []fallbackVideo{{"52r_Ul5k03g", "Box Jump"}}},
	{"plyometric", []fallbackVideo{{"52r_Ul5k03g", "Box Jump"}}},
	{"medicine ball", []fallbackVideo{{"kLRDT6qAeYE", "Rotational Medicine Ball Throw"}}},
	{"sprint", []fallbackVideo{{"6GRc9T0c9Yk", "Sprint Mechanics Drills"}}},
	{"agility", []fallbackVideo{{"Jb3ofnnNuIk", "Agility Ladder Drills"}}},
	{"carry", []fallbackVideo{{"Fkzk_RqlYig", "Farmer Carry"}}},
	{"plank", []fallbackVideo{{"pSHjTRCQxIw", "Plank Form"}}},
	{"balance", []fallbackVideo{{"4ZQqqjdPtcw", "Single-Leg Balance Progressions"}}},
	{"mobility", []fallbackVideo{{"TSIbzfcnv_8", "Hip Mobility Flow"}}},
	{"stretch", []fallbackVideo{{"TSIbzfcnv_8", "Dynamic Stretching Routine"}}},
}

var genericFallback = []fallbackVideo{{"UItWltVZZmE", "Full Body Warm-Up"}}

// FallbackVideos maps a query onto the fixed keyword table. It is
// deterministic and always returns at least one video.
func FallbackVideos(query string) []domain.Video {
	q := NormalizeQuery(query)
	picked := genericFallback
	for _, e := range fallbackMapping {
		if strings.Contains(q, e.keyword) {
			picked = e.videos
			break
		}
	}
	out := make([]domain.Video, len(picked))
	for i, v := range picked {
		out[i] = domain.Video{
			VideoID:  v.id,
			Title:    v.title,
			URL:      domain.YouTubeWatchURL(v.id),
			Fallback: true,
		}
	}
	return out
}

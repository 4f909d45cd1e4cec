package video

import (
	"strings"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("video not found")

type Category string

const (
	All        Category = "All"
	Meditation Category = "Meditation"
	Anxiety    Category = "Anxiety"
	Breathing  Category = "Breathing"
	Motivation Category = "Motivation"
	Depression Category = "Depression"
	Sleep      Category = "Sleep"
)

// Categories lists the filter choices, All first.
var Categories = []Category{All, Meditation, Anxiety, Breathing, Motivation, Depression, Sleep}

type Video struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Duration     string   `json:"duration"`
	VideoID      string   `json:"video_id"` // id on the video host
	ThumbnailURL string   `json:"thumbnail"`
	Views        string   `json:"views"`
	Featured     bool     `json:"featured"`
}

func thumbnail(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/maxresdefault.jpg"
}

var catalog = []Video{
	{
		ID:           "meditation-1",
		Title:        "5-Minute Morning Meditation for Students",
		Description:  "Start your day with calm and focus. Perfect for busy student schedules.",
		Category:     Meditation,
		Duration:     "5:32",
		VideoID:      "O-6f5wQXSu8",
		ThumbnailURL: thumbnail("O-6f5wQXSu8"),
		Views:        "2.1K",
		Featured:     true,
	},
	{
		ID:           "anxiety-2",
		Title:        "Managing Test Anxiety - Quick Techniques",
		Description:  "Learn effective strategies to calm your nerves before exams.",
		Category:     Anxiety,
		Duration:     "7:45",
		VideoID:      "YQIqgxeNtl0",
		ThumbnailURL: thumbnail("YQIqgxeNtl0"),
		Views:        "5.8K",
	},
	{
		ID:           "breathing-3",
		Title:        "Box Breathing for Instant Calm",
		Description:  "Simple breathing technique you can use anywhere, anytime.",
		Category:     Breathing,
		Duration:     "3:20",
		VideoID:      "GZzhk9jEkkI",
		ThumbnailURL: thumbnail("GZzhk9jEkkI"),
		Views:        "12.3K",
		Featured:     true,
	},
	{
		ID:           "motivation-4",
		Title:        "Daily Affirmations for Self-Love",
		Description:  "Boost your confidence with these powerful daily affirmations.",
		Category:     Motivation,
		Duration:     "6:15",
		VideoID:      "4pLUleLdwY4",
		ThumbnailURL: thumbnail("4pLUleLdwY4"),
		Views:        "8.7K",
	},
	{
		ID:           "depression-5",
		Title:        "Understanding Depression: You Are Not Alone",
		Description:  "Educational content about depression and finding support.",
		Category:     Depression,
		Duration:     "12:30",
		VideoID:      "z-IR48Mb3W0",
		ThumbnailURL: thumbnail("z-IR48Mb3W0"),
		Views:        "15.2K",
	},
	{
		ID:           "sleep-6",
		Title:        "Better Sleep for Better Mental Health",
		Description:  "Tips and techniques for improving your sleep quality.",
		Category:     Sleep,
		Duration:     "9:18",
		VideoID:      "nm1TxQj9IsQ",
		ThumbnailURL: thumbnail("nm1TxQj9IsQ"),
		Views:        "6.4K",
		Featured:     true,
	},
}

// Catalog returns a copy of the whole catalog in display order.
func Catalog() []Video {
	out := make([]Video, len(catalog))
	copy(out, catalog)
	return out
}

// Filter keeps the videos whose category equals c exactly; All keeps everything.
// An unknown category yields an empty list.
func Filter(c Category) []Video {
	if c == All {
		return Catalog()
	}
	out := make([]Video, 0, len(catalog))
	for _, v := range catalog {
		if v.Category == c {
			out = append(out, v)
		}
	}
	return out
}

// Featured returns the featured videos regardless of any filter.
func Featured() []Video {
	out := make([]Video, 0, len(catalog))
	for _, v := range catalog {
		if v.Featured {
			out = append(out, v)
		}
	}
	return out
}

func Get(id string) (Video, error) {
	for _, v := range catalog {
		if v.ID == id {
			return v, nil
		}
	}
	return Video{}, ErrNotFound
}

type Style struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var (
	categoryIcons = map[string]string{
		"meditation": "Brain",
		"anxiety":    "Heart",
		"breathing":  "Wind",
		"motivation": "Star",
		"depression": "Heart",
		"sleep":      "Sparkles",
	}
	defaultIcon = "Play"

	categoryColors = map[string]string{
		"meditation": "bg-kawaii-green text-white",
		"anxiety":    "bg-kawaii-blue text-white",
		"depression": "bg-kawaii-purple text-white",
		"motivation": "bg-kawaii-yellow text-gray-800",
		"breathing":  "bg-kawaii-pink text-white",
	}
	defaultColor = "bg-primary text-primary-foreground"
)

// StyleOf returns the icon and badge color of a category, case-insensitively.
func StyleOf(c Category) Style {
	key := strings.ToLower(string(c))
	s := Style{Icon: defaultIcon, Color: defaultColor}
	if icon, ok := categoryIcons[key]; ok {
		s.Icon = icon
	}
	if color, ok := categoryColors[key]; ok {
		s.Color = color
	}
	return s
}

package avatar

type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodSad     Mood = "sad"
	MoodExcited Mood = "excited"
	MoodCalm    Mood = "calm"
)

type Badge struct {
	Emoji string `json:"emoji"`
	Class string `json:"class"`
}

var (
	moodBadges = map[Mood]Badge{
		MoodHappy:   {Emoji: "😊", Class: "bg-kawaii-green"},
		MoodSad:     {Emoji: "😢", Class: "bg-kawaii-blue"},
		MoodExcited: {Emoji: "🤗", Class: "bg-kawaii-yellow"},
		MoodCalm:    {Emoji: "😌", Class: "bg-kawaii-purple"},
	}
	defaultBadge = Badge{Emoji: "😐", Class: "bg-muted"}
)

// MoodBadge returns the badge of m, the neutral badge for unknown moods.
func MoodBadge(m Mood) Badge {
	if b, ok := moodBadges[m]; ok {
		return b
	}
	return defaultBadge
}

type Indicator struct {
	Online bool   `json:"online"`
	Class  string `json:"class"`
}

// OnlineIndicator is nil when the presence is unknown.
func OnlineIndicator(online *bool) *Indicator {
	if online == nil {
		return nil
	}
	if *online {
		return &Indicator{Online: true, Class: "bg-success animate-pulse"}
	}
	return &Indicator{Online: false, Class: "bg-muted"}
}

type Size string

const (
	SizeSmall  Size = "sm"
	SizeMedium Size = "md"
	SizeLarge  Size = "lg"
	SizeXLarge Size = "xl"
)

var sizeClasses = map[Size]string{
	SizeSmall:  "h-8 w-8",
	SizeMedium: "h-10 w-10",
	SizeLarge:  "h-16 w-16",
	SizeXLarge: "h-24 w-24",
}

func (s Size) Class() string {
	if c, ok := sizeClasses[s]; ok {
		return c
	}
	return sizeClasses[SizeMedium]
}

func (s Size) Valid() bool {
	_, ok := sizeClasses[s]
	return ok
}

type Options struct {
	Name          string
	ImageURL      string // overrides the generated image
	Mood          Mood
	ShowMoodBadge bool
	Online        *bool
	Size          Size
}

type View struct {
	Name            string     `json:"name"`
	ImageURL        string     `json:"image_url"`
	Initials        string     `json:"initials"`
	Color           string     `json:"color"`
	Size            Size       `json:"size"`
	SizeClass       string     `json:"size_class"`
	MoodBadge       *Badge     `json:"mood_badge,omitempty"`
	OnlineIndicator *Indicator `json:"online_indicator,omitempty"`
}

// Render resolves the avatar of opts against the generation service.
func Render(service string, opts Options) View {
	size := opts.Size
	if !size.Valid() {
		size = SizeMedium
	}
	v := View{
		Name:            opts.Name,
		ImageURL:        opts.ImageURL,
		Initials:        Initials(opts.Name),
		Color:           Color(opts.Name),
		Size:            size,
		SizeClass:       size.Class(),
		OnlineIndicator: OnlineIndicator(opts.Online),
	}
	if v.ImageURL == "" {
		v.ImageURL = URL(service, opts.Name)
	}
	if opts.ShowMoodBadge {
		b := MoodBadge(opts.Mood)
		v.MoodBadge = &b
	}
	return v
}

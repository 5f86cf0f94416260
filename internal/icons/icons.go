// Package icons selects the glyphs used by the player display.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Play       string
	Pause      string
	Stop       string
	Shuffle    string
	RepeatAll  string
	RepeatOne  string
	Sleep      string
	Volume     string
	VolumeMute string
}

var (
	nerdIcons = Icons{
		Play:       "", // nf-fa-play
		Pause:      "", // nf-fa-pause
		Stop:       "", // nf-fa-stop
		Shuffle:    "󰒟", // nf-md-shuffle
		RepeatAll:  "󰑖", // nf-md-repeat
		RepeatOne:  "󰑘", // nf-md-repeat_once
		Sleep:      "󰒲", // nf-md-sleep
		Volume:     "󰕾", // nf-md-volume_high
		VolumeMute: "󰖁", // nf-md-volume_off
	}

	unicodeIcons = Icons{
		Play:       "▶",
		Pause:      "⏸",
		Stop:       "⏹",
		Shuffle:    "🔀",
		RepeatAll:  "🔁",
		RepeatOne:  "🔂",
		Sleep:      "💤",
		Volume:     "🔊",
		VolumeMute: "🔇",
	}

	noneIcons = Icons{
		Play:       ">",
		Pause:      "||",
		Stop:       "[]",
		Shuffle:    "[S]",
		RepeatAll:  "[R]",
		RepeatOne:  "[1]",
		Sleep:      "[Z]",
		Volume:     "vol",
		VolumeMute: "mute",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	case StyleNone:
		current = noneIcons
	default:
		current = noneIcons
	}
}

func Play() string       { return current.Play }
func Pause() string      { return current.Pause }
func Stop() string       { return current.Stop }
func Shuffle() string    { return current.Shuffle }
func RepeatAll() string  { return current.RepeatAll }
func RepeatOne() string  { return current.RepeatOne }
func Sleep() string      { return current.Sleep }
func Volume() string     { return current.Volume }
func VolumeMute() string { return current.VolumeMute }

// Package theme defines the color presets for payoff's terminal output.
//
// There is no process-wide active theme: the selected Theme value is read
// from prefs and handed to whatever renders.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps color roles to concrete colors.
type Theme struct {
	ID    string
	Label string

	Background   lipgloss.Color
	Surface      lipgloss.Color // cards and panels
	SurfaceHover lipgloss.Color // selected row, active tab
	Border       lipgloss.Color
	BorderBright lipgloss.Color // card edges, focus

	TextDim     lipgloss.Color // hints, disabled
	TextMuted   lipgloss.Color // labels
	TextPrimary lipgloss.Color

	Accent       lipgloss.Color
	AccentBright lipgloss.Color
	AccentDim    lipgloss.Color

	Paid     lipgloss.Color // progress, earnings, success
	Owed     lipgloss.Color // balances still due
	Interest lipgloss.Color // interest cost, warnings
	Danger   lipgloss.Color // errors, destructive actions
	Info     lipgloss.Color
}

// DefaultID is used when nothing valid is stored.
const DefaultID = "flexoki-dark"

// FlexokiDark is a warm, paper-inspired dark palette.
var FlexokiDark = Theme{
	ID:           "flexoki-dark",
	Label:        "Flexoki Dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	SurfaceHover: lipgloss.Color("#282726"),
	Border:       lipgloss.Color("#403E3C"),
	BorderBright: lipgloss.Color("#575653"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	AccentBright: lipgloss.Color("#5BC8BE"),
	AccentDim:    lipgloss.Color("#1A3533"),
	Paid:         lipgloss.Color("#879A39"),
	Owed:         lipgloss.Color("#D14D41"),
	Interest:     lipgloss.Color("#DA702C"),
	Danger:       lipgloss.Color("#D14D41"),
	Info:         lipgloss.Color("#4385BE"),
}

// CatppuccinMocha is a soft pastel palette.
var CatppuccinMocha = Theme{
	ID:           "catppuccin-mocha",
	Label:        "Catppuccin Mocha",
	Background:   lipgloss.Color("#1E1E2E"),
	Surface:      lipgloss.Color("#313244"),
	SurfaceHover: lipgloss.Color("#45475A"),
	Border:       lipgloss.Color("#585B70"),
	BorderBright: lipgloss.Color("#7F849C"),
	TextDim:      lipgloss.Color("#6C7086"),
	TextMuted:    lipgloss.Color("#A6ADC8"),
	TextPrimary:  lipgloss.Color("#CDD6F4"),
	Accent:       lipgloss.Color("#89B4FA"),
	AccentBright: lipgloss.Color("#B4D0FB"),
	AccentDim:    lipgloss.Color("#293147"),
	Paid:         lipgloss.Color("#A6E3A1"),
	Owed:         lipgloss.Color("#F38BA8"),
	Interest:     lipgloss.Color("#FAB387"),
	Danger:       lipgloss.Color("#F38BA8"),
	Info:         lipgloss.Color("#94E2D5"),
}

// TokyoNight is a cool blue and purple palette.
var TokyoNight = Theme{
	ID:           "tokyo-night",
	Label:        "Tokyo Night",
	Background:   lipgloss.Color("#1A1B26"),
	Surface:      lipgloss.Color("#24283B"),
	SurfaceHover: lipgloss.Color("#343A52"),
	Border:       lipgloss.Color("#565F89"),
	BorderBright: lipgloss.Color("#7982A9"),
	TextDim:      lipgloss.Color("#565F89"),
	TextMuted:    lipgloss.Color("#A9B1D6"),
	TextPrimary:  lipgloss.Color("#C0CAF5"),
	Accent:       lipgloss.Color("#7AA2F7"),
	AccentBright: lipgloss.Color("#A9C1FF"),
	AccentDim:    lipgloss.Color("#252B3F"),
	Paid:         lipgloss.Color("#9ECE6A"),
	Owed:         lipgloss.Color("#F7768E"),
	Interest:     lipgloss.Color("#FF9E64"),
	Danger:       lipgloss.Color("#F7768E"),
	Info:         lipgloss.Color("#7DCFFF"),
}

// Terminal sticks to the ANSI 16 colors.
var Terminal = Theme{
	ID:           "terminal",
	Label:        "Terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	SurfaceHover: lipgloss.Color("8"),
	Border:       lipgloss.Color("8"),
	BorderBright: lipgloss.Color("7"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("6"),
	AccentBright: lipgloss.Color("14"),
	AccentDim:    lipgloss.Color("0"),
	Paid:         lipgloss.Color("2"),
	Owed:         lipgloss.Color("1"),
	Interest:     lipgloss.Color("3"),
	Danger:       lipgloss.Color("1"),
	Info:         lipgloss.Color("4"),
}

// All lists the presets in display order.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// Lookup finds a preset by id.
func Lookup(id string) (Theme, bool) {
	for _, t := range All {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}

// ByName returns the preset with id, or FlexokiDark if there is none.
func ByName(id string) Theme {
	if t, ok := Lookup(id); ok {
		return t
	}
	return FlexokiDark
}

// Names returns every preset id in display order.
func Names() []string {
	out := make([]string, len(All))
	for i, t := range All {
		out[i] = t.ID
	}
	return out
}

// Next returns the preset after id, wrapping around.
func Next(id string) Theme {
	for i, t := range All {
		if t.ID == id {
			return All[(i+1)%len(All)]
		}
	}
	return All[0]
}

package weather

// DefaultIcon is the asset used for condition codes without a dedicated icon.
const DefaultIcon = "default"

// knownIcons lists the condition codes that ship with an icon asset named
// after the code itself.
var knownIcons = map[string]struct{}{
	"113": {}, // clear/sunny
	"116": {}, // partly cloudy
	"308": {}, // heavy rain
	"389": {}, // thunder with rain
}

var (
	// DayPalette is the background gradient used while the provider reports daytime.
	DayPalette = Palette{
		Top:    RGBA{R: 50, G: 220, B: 255, A: 1},
		Bottom: RGBA{R: 20, G: 120, B: 180, A: 1},
	}
	// NightPalette is used for every other is_day value.
	NightPalette = Palette{
		Top:    RGBA{R: 20, G: 150, B: 150, A: 1},
		Bottom: RGBA{R: 0, G: 80, B: 80, A: 1},
	}
)

// IconFor returns the icon asset name for a condition code. It is an exact
// match against the known codes; anything else gets DefaultIcon.
func IconFor(code string) string {
	if _, ok := knownIcons[code]; ok {
		return code
	}
	return DefaultIcon
}

// PaletteFor picks the day palette for "yes" and the night palette otherwise.
func PaletteFor(isDaytime string) Palette {
	if (Conditions{IsDaytime: isDaytime}).Daytime() {
		return DayPalette
	}
	return NightPalette
}

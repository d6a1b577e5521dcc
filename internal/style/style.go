package style

import (
	"fmt"
	"image/color"
	"strings"
)

// Palette is the color bundle applied to a rendered calendar.
type Palette struct {
	Background color.RGBA
	Text       color.RGBA
	Muted      color.RGBA // out-of-month padding cells
	Holiday    color.RGBA
	Makeup     color.RGBA
	Grid       color.RGBA
	Accent     color.RGBA // header decoration
}

// Preset is a named visual style: a palette for local rendering plus the
// enhancement instruction passed to the image model. Presets are fixed at
// startup; lookup by unknown name is a user error.
type Preset struct {
	Name       string
	Palette    Palette
	Prompt     string // style-specific fragment of the enhancement instruction
	ShowLegend bool   // layout hint: render the makeup-workday legend block
}

var (
	lightGray  = color.RGBA{200, 200, 200, 255}
	darkText   = color.RGBA{30, 30, 30, 255}
	holidayRed = color.RGBA{220, 60, 60, 255}
	makeupBlue = color.RGBA{80, 120, 200, 255}
)

// Preset order is fixed so listings and prompts stay deterministic.
var names = []string{
	"简约商务风",
	"中国红喜庆风",
	"清新淡雅风",
	"可爱卡通风",
}

var presets = map[string]*Preset{
	"简约商务风": {
		Name: "简约商务风",
		Palette: Palette{
			Background: color.RGBA{255, 255, 255, 255},
			Text:       darkText,
			Muted:      lightGray,
			Holiday:    holidayRed,
			Makeup:     makeupBlue,
			Grid:       lightGray,
			Accent:     color.RGBA{50, 70, 110, 255},
		},
		Prompt:     "Minimalist business style: restrained palette, generous whitespace, crisp sans-serif typography, subtle card shadow.",
		ShowLegend: true,
	},
	"中国红喜庆风": {
		Name: "中国红喜庆风",
		Palette: Palette{
			Background: color.RGBA{253, 245, 240, 255},
			Text:       color.RGBA{90, 30, 30, 255},
			Muted:      color.RGBA{215, 190, 185, 255},
			Holiday:    color.RGBA{200, 30, 30, 255},
			Makeup:     color.RGBA{180, 120, 40, 255},
			Grid:       color.RGBA{230, 200, 190, 255},
			Accent:     color.RGBA{200, 30, 30, 255},
		},
		Prompt:     "Festive Chinese New Year style: auspicious red and gold palette, traditional decorative accents such as lanterns or paper-cut motifs in the margins.",
		ShowLegend: true,
	},
	"清新淡雅风": {
		Name: "清新淡雅风",
		Palette: Palette{
			Background: color.RGBA{247, 250, 248, 255},
			Text:       color.RGBA{55, 70, 60, 255},
			Muted:      color.RGBA{190, 205, 195, 255},
			Holiday:    color.RGBA{90, 160, 120, 255},
			Makeup:     color.RGBA{110, 140, 190, 255},
			Grid:       color.RGBA{210, 225, 215, 255},
			Accent:     color.RGBA{90, 160, 120, 255},
		},
		Prompt:     "Fresh and elegant style: soft pastel greens, airy layout, light botanical decoration, calm and clean overall mood.",
		ShowLegend: true,
	},
	"可爱卡通风": {
		Name: "可爱卡通风",
		Palette: Palette{
			Background: color.RGBA{255, 250, 240, 255},
			Text:       color.RGBA{70, 55, 50, 255},
			Muted:      color.RGBA{215, 205, 195, 255},
			Holiday:    color.RGBA{240, 110, 110, 255},
			Makeup:     color.RGBA{100, 150, 230, 255},
			Grid:       color.RGBA{235, 220, 205, 255},
			Accent:     color.RGBA{250, 170, 90, 255},
		},
		Prompt:     "Cute cartoon style: rounded shapes, warm cheerful colors, small playful illustrations around the calendar, hand-drawn feel while keeping the grid legible.",
		ShowLegend: true,
	},
}

// DefaultName is the preset used when the user selects none.
const DefaultName = "简约商务风"

// Get looks up a preset by name.
func Get(name string) (*Preset, error) {
	if name == "" {
		name = DefaultName
	}
	preset, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown style %q (available: %s)", name, strings.Join(names, ", "))
	}
	return preset, nil
}

// Names returns the available preset names in a stable order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

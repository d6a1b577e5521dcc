package render

import (
	"os"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontSet holds the resolved regular and bold faces for day numbers, labels
// and headers. Resolution is best effort and never fatal: CJK-capable system
// fonts are tried in order and the embedded Go fonts are the final fallback.
type FontSet struct {
	regular *sfnt.Font
	bold    *sfnt.Font

	// Source names the font file that won the fallback chain, for logging.
	Source string
}

// Candidate CJK font files per platform, tried in order. Windows names
// resolve relative to the system font directory; the rest are absolute.
func fontCandidates(bold bool) []string {
	switch runtime.GOOS {
	case "windows":
		name := "msyh.ttc"
		if bold {
			name = "msyhbd.ttc"
		}
		return []string{
			`C:\Windows\Fonts\` + name,
			`C:\Windows\Fonts\simhei.ttf`,
			`C:\Windows\Fonts\simsun.ttc`,
		}
	case "darwin":
		return []string{
			"/System/Library/Fonts/PingFang.ttc",
			"/System/Library/Fonts/STHeiti Medium.ttc",
		}
	default:
		return []string{
			"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
			"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc",
			"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
		}
	}
}

func loadFontFile(path string) (*sfnt.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// ParseCollection accepts both .ttc collections and plain .ttf files
	collection, err := sfnt.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	return collection.Font(0)
}

// LoadFontSet resolves the font fallback chain once at startup.
func LoadFontSet(logger *zap.Logger) *FontSet {
	set := &FontSet{Source: "embedded"}

	for _, path := range fontCandidates(false) {
		f, err := loadFontFile(path)
		if err != nil {
			continue
		}
		set.regular = f
		set.Source = path
		break
	}
	if set.regular != nil {
		for _, path := range fontCandidates(true) {
			f, err := loadFontFile(path)
			if err != nil {
				continue
			}
			set.bold = f
			break
		}
		if set.bold == nil {
			set.bold = set.regular
		}
	}

	if set.regular == nil {
		// Embedded Go fonts lack CJK glyphs but keep rendering functional
		regular, err := sfnt.Parse(goregular.TTF)
		if err == nil {
			set.regular = regular
		}
		boldFont, err := sfnt.Parse(gobold.TTF)
		if err == nil {
			set.bold = boldFont
		} else {
			set.bold = set.regular
		}
		logger.Warn("no CJK font found, using embedded fonts",
			zap.String("goos", runtime.GOOS))
	} else {
		logger.Debug("font resolved", zap.String("source", set.Source))
	}

	return set
}

// Face builds a face at the given pixel size. Falls back to the fixed-size
// bitmap face when the outline font cannot be instantiated.
func (s *FontSet) Face(size float64, bold bool) font.Face {
	src := s.regular
	if bold && s.bold != nil {
		src = s.bold
	}
	if src == nil {
		return basicfont.Face7x13
	}

	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Resolution tiers map to total pixel budgets. The aspect ratio then splits a
// budget into width × height preserving total area, so a 16:9 image at 2K
// carries roughly as many pixels as a square one.
var pixelBudgets = map[string]int{
	"1K": 1024 * 1024,
	"2K": 2048 * 2048,
	"4K": 4096 * 4096,
}

var supportedAspects = map[string]bool{
	"1:1": true, "2:3": true, "3:2": true, "3:4": true, "4:3": true,
	"4:5": true, "5:4": true, "9:16": true, "16:9": true, "21:9": true,
}

// ParseAspectRatio splits an aspect ratio string into its integer terms.
func ParseAspectRatio(s string) (w, h int, err error) {
	if !supportedAspects[s] {
		return 0, 0, fmt.Errorf("unsupported aspect ratio %q", s)
	}
	parts := strings.SplitN(s, ":", 2)
	w, _ = strconv.Atoi(parts[0])
	h, _ = strconv.Atoi(parts[1])
	return w, h, nil
}

// CanvasSize computes the output canvas dimensions for an aspect ratio and
// resolution tier.
func CanvasSize(aspect, resolution string) (width, height int, err error) {
	budget, ok := pixelBudgets[resolution]
	if !ok {
		return 0, 0, fmt.Errorf("unsupported resolution %q (use 1K, 2K or 4K)", resolution)
	}
	aw, ah, err := ParseAspectRatio(aspect)
	if err != nil {
		return 0, 0, err
	}

	width = int(math.Round(math.Sqrt(float64(budget) * float64(aw) / float64(ah))))
	height = int(math.Round(float64(budget) / float64(width)))
	return width, height, nil
}

// isLandscape reports whether the aspect ratio is at least as wide as tall.
func isLandscape(aspect string) bool {
	aw, ah, err := ParseAspectRatio(aspect)
	if err != nil {
		return true
	}
	return aw >= ah
}

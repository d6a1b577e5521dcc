package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvasSize(t *testing.T) {
	tests := []struct {
		name       string
		aspect     string
		resolution string
		wantW      int
		wantH      int
		wantErr    bool
	}{
		{name: "square 1K", aspect: "1:1", resolution: "1K", wantW: 1024, wantH: 1024},
		{name: "square 2K", aspect: "1:1", resolution: "2K", wantW: 2048, wantH: 2048},
		{name: "square 4K", aspect: "1:1", resolution: "4K", wantW: 4096, wantH: 4096},
		{name: "wide 2K", aspect: "16:9", resolution: "2K", wantW: 2731, wantH: 1536},
		{name: "tall 2K", aspect: "9:16", resolution: "2K", wantW: 1536, wantH: 2731},
		{name: "ultrawide 1K", aspect: "21:9", resolution: "1K", wantW: 1564, wantH: 670},
		{name: "bad aspect", aspect: "7:5", resolution: "2K", wantErr: true},
		{name: "bad resolution", aspect: "16:9", resolution: "8K", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := CanvasSize(tt.aspect, tt.resolution)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestCanvasSizePreservesBudget(t *testing.T) {
	for aspect := range supportedAspects {
		w, h, err := CanvasSize(aspect, "2K")
		require.NoError(t, err, aspect)

		// Area must stay within 1% of the tier budget
		budget := 2048 * 2048
		area := w * h
		assert.InEpsilon(t, budget, area, 0.01, aspect)
	}
}

func TestParseAspectRatio(t *testing.T) {
	w, h, err := ParseAspectRatio("3:2")
	require.NoError(t, err)
	assert.Equal(t, 3, w)
	assert.Equal(t, 2, h)

	_, _, err = ParseAspectRatio("16x9")
	assert.Error(t, err)
}

func TestIsLandscape(t *testing.T) {
	assert.True(t, isLandscape("16:9"))
	assert.True(t, isLandscape("1:1"))
	assert.False(t, isLandscape("9:16"))
	assert.False(t, isLandscape("4:5"))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{in: "png", want: FormatPNG, ok: true},
		{in: "jpg", want: FormatJPEG, ok: true},
		{in: "jpeg", want: FormatJPEG, ok: true},
		{in: "pdf", want: FormatPDF, ok: true},
		{in: "html", want: FormatHTML, ok: true},
		{in: "gif", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		got, ok := ParseFormat(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCellFormat(t *testing.T) {
	format, err := decodeCellFormat(map[string]any{
		"bold":           true,
		"interiorColour": []any{255.0, 0.0, 0.0},
		"numberFormat":   "0.00",
		"hAlign":         "center",
	})
	require.NoError(t, err)
	require.NotNil(t, format.Bold)
	assert.True(t, *format.Bold)
	require.NotNil(t, format.InteriorColour)
	assert.Equal(t, uint8(255), format.InteriorColour[0])
	require.NotNil(t, format.NumberFormat)
	assert.Equal(t, "0.00", *format.NumberFormat)
}

func TestDecodeCellFormatRejectsUnknownKeys(t *testing.T) {
	_, err := decodeCellFormat(map[string]any{"boldness": true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "supported keys")
}

func TestDecodeCellFormatRejectsNil(t *testing.T) {
	_, err := decodeCellFormat(nil)
	require.Error(t, err)
}

func TestDecodeCellFormatBorders(t *testing.T) {
	format, err := decodeCellFormat(map[string]any{
		"borderBottom": map[string]any{
			"lineStyle": "double",
			"weight":    "thick",
			"colour":    []any{0.0, 0.0, 255.0},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, format.BorderBottom)
	assert.Equal(t, "double", format.BorderBottom.LineStyle)
	assert.Equal(t, "thick", format.BorderBottom.Weight)
	require.NotNil(t, format.BorderBottom.Colour)
	assert.Equal(t, uint8(255), format.BorderBottom.Colour[2])
}

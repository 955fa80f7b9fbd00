package excel

import (
	"testing"
)

func TestRGB(t *testing.T) {
	tests := []struct {
		name    string
		colour  RGB
		wantBGR int
		wantHex string
	}{
		{"black", RGB{0, 0, 0}, 0, "000000"},
		{"white", RGB{255, 255, 255}, 0xFFFFFF, "FFFFFF"},
		{"pure red", RGB{255, 0, 0}, 0x0000FF, "FF0000"},
		{"pure green", RGB{0, 255, 0}, 0x00FF00, "00FF00"},
		{"pure blue", RGB{0, 0, 255}, 0xFF0000, "0000FF"},
		{"mixed", RGB{0x12, 0x34, 0x56}, 0x563412, "123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.colour.BGR(); got != tt.wantBGR {
				t.Errorf("BGR() = %#x, want %#x", got, tt.wantBGR)
			}
			if got := tt.colour.Hex(); got != tt.wantHex {
				t.Errorf("Hex() = %q, want %q", got, tt.wantHex)
			}
		})
	}
}

func TestParseConditionType(t *testing.T) {
	valid := []string{
		"cell_value", "expression", "color_scale", "data_bar", "icon_set",
		"top_ten", "unique", "text", "is_blank", "no_blanks", "is_error",
		"no_errors", "time_period", "above_average",
	}
	for _, s := range valid {
		if _, err := ParseConditionType(s); err != nil {
			t.Errorf("ParseConditionType(%q) error = %v", s, err)
		}
	}
	for _, s := range []string{"", "cellvalue", "CELL_VALUE", "bogus"} {
		if _, err := ParseConditionType(s); err == nil {
			t.Errorf("ParseConditionType(%q) expected error", s)
		}
	}
}

func TestParseOperator(t *testing.T) {
	valid := []string{
		"between", "not_between", "equal_to", "not_equal",
		"greater_than", "less_than", "greater_equal", "less_equal",
	}
	for _, s := range valid {
		if _, err := ParseOperator(s); err != nil {
			t.Errorf("ParseOperator(%q) error = %v", s, err)
		}
	}
	for _, s := range []string{"", "equals", ">=", "Between"} {
		if _, err := ParseOperator(s); err == nil {
			t.Errorf("ParseOperator(%q) expected error", s)
		}
	}
}

func TestParseAlignments(t *testing.T) {
	hTests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"left", -4131, false},
		{"center", -4108, false},
		{"right", -4152, false},
		{"top", 0, true},
		{"", 0, true},
	}
	for _, tt := range hTests {
		got, err := ParseHAlign(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHAlign(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseHAlign(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}

	vTests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"top", -4160, false},
		{"center", -4108, false},
		{"bottom", -4107, false},
		{"left", 0, true},
	}
	for _, tt := range vTests {
		got, err := ParseVAlign(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVAlign(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseVAlign(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseVisibility(t *testing.T) {
	for _, s := range []string{"visible", "hidden", "very hidden"} {
		v, err := ParseVisibility(s)
		if err != nil {
			t.Errorf("ParseVisibility(%q) error = %v", s, err)
		}
		if string(v) != s {
			t.Errorf("ParseVisibility(%q) = %q", s, v)
		}
	}
	for _, s := range []string{"", "Visible", "veryhidden", "shown"} {
		if _, err := ParseVisibility(s); err == nil {
			t.Errorf("ParseVisibility(%q) expected error", s)
		}
	}
}

func TestVisibilityOleValue(t *testing.T) {
	if got := VisibilityVisible.oleValue(); got != xlSheetVisible {
		t.Errorf("visible oleValue = %d, want %d", got, xlSheetVisible)
	}
	if got := VisibilityHidden.oleValue(); got != xlSheetHidden {
		t.Errorf("hidden oleValue = %d, want %d", got, xlSheetHidden)
	}
	if got := VisibilityVeryHidden.oleValue(); got != xlSheetVeryHidden {
		t.Errorf("very hidden oleValue = %d, want %d", got, xlSheetVeryHidden)
	}
}

func TestExcelizeStyleRejectsBadInput(t *testing.T) {
	badHAlign := "diagonal"
	if _, err := excelizeStyle(&CellFormat{HAlign: &badHAlign}); err == nil {
		t.Error("expected error for invalid hAlign")
	}

	if _, err := excelizeStyle(&CellFormat{BorderLeft: &BorderFormat{LineStyle: "wavy"}}); err == nil {
		t.Error("expected error for invalid border line style")
	}
}

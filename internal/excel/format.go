package excel

import (
	"fmt"
)

// Host application constants used by the OLE backend. Values are the
// XlConstants the automation interface expects.
const (
	xlCalculationAutomatic = -4105
	xlCalculationManual    = -4135
	xlLocalSessionChanges  = 2
	xlNoSelection          = -4142
	xlNoRestrictions       = 0
	xlSheetVisible         = -1
	xlSheetHidden          = 0
	xlSheetVeryHidden      = 2
	xlTypePDF              = 0

	xlEdgeLeft         = 7
	xlEdgeTop          = 8
	xlEdgeBottom       = 9
	xlEdgeRight        = 10
	xlInsideVertical   = 11
	xlInsideHorizontal = 12
)

// RGB is a red/green/blue colour triple as the caller supplies it.
type RGB [3]uint8

// BGR returns the colour as the integer the host expects: the host reads
// fill and font colours in blue-green-red byte order.
func (c RGB) BGR() int {
	return int(c[2])<<16 | int(c[1])<<8 | int(c[0])
}

// Hex returns the colour as an RRGGBB string for the excelize backend.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c[0], c[1], c[2])
}

// BorderFormat styles one border edge of a range.
type BorderFormat struct {
	LineStyle string `json:"lineStyle,omitempty"`
	Weight    string `json:"weight,omitempty"`
	Colour    *RGB   `json:"colour,omitempty"`
}

// CellFormat carries the friendly formatting options callers can apply to a
// range. Nil fields are left untouched on the host. This is the explicit,
// caller-facing enumeration of supported options; each field maps to exactly
// one property on the host's Range object.
type CellFormat struct {
	InteriorColour *RGB          `json:"interiorColour,omitempty"`
	NumberFormat   *string       `json:"numberFormat,omitempty"`
	Bold           *bool         `json:"bold,omitempty"`
	FontColour     *RGB          `json:"fontColour,omitempty"`
	FontSize       *int          `json:"fontSize,omitempty"`
	FontName       *string       `json:"fontName,omitempty"`
	Orientation    *int          `json:"orientation,omitempty"`
	Underline      *bool         `json:"underline,omitempty"`
	Merge          *bool         `json:"merge,omitempty"`
	WrapText       *bool         `json:"wrapText,omitempty"`
	HAlign         *string       `json:"hAlign,omitempty"`
	VAlign         *string       `json:"vAlign,omitempty"`
	BorderLeft     *BorderFormat `json:"borderLeft,omitempty"`
	BorderRight    *BorderFormat `json:"borderRight,omitempty"`
	BorderTop      *BorderFormat `json:"borderTop,omitempty"`
	BorderBottom   *BorderFormat `json:"borderBottom,omitempty"`
	BorderInsideH  *BorderFormat `json:"borderInsideH,omitempty"`
	BorderInsideV  *BorderFormat `json:"borderInsideV,omitempty"`
}

// FormatOptionNames lists the option names callers may supply, for tool
// descriptions and error messages.
func FormatOptionNames() []string {
	return []string{
		"interiorColour", "numberFormat", "bold", "fontColour", "fontSize",
		"fontName", "orientation", "underline", "merge", "wrapText",
		"hAlign", "vAlign", "borderLeft", "borderRight", "borderTop",
		"borderBottom", "borderInsideH", "borderInsideV",
	}
}

// ConditionType selects what a conditional formatting rule tests.
type ConditionType string

const (
	ConditionCellValue    ConditionType = "cell_value"
	ConditionExpression   ConditionType = "expression"
	ConditionColorScale   ConditionType = "color_scale"
	ConditionDataBar      ConditionType = "data_bar"
	ConditionIconSet      ConditionType = "icon_set"
	ConditionTop10        ConditionType = "top_ten"
	ConditionUnique       ConditionType = "unique"
	ConditionText         ConditionType = "text"
	ConditionBlanks       ConditionType = "is_blank"
	ConditionNoBlanks     ConditionType = "no_blanks"
	ConditionErrors       ConditionType = "is_error"
	ConditionNoErrors     ConditionType = "no_errors"
	ConditionTimePeriod   ConditionType = "time_period"
	ConditionAboveAverage ConditionType = "above_average"
)

// conditionTypeValues maps friendly names to XlFormatConditionType constants.
var conditionTypeValues = map[ConditionType]int{
	ConditionCellValue:    1,
	ConditionExpression:   2,
	ConditionColorScale:   3,
	ConditionDataBar:      4,
	ConditionTop10:        5,
	ConditionIconSet:      6,
	ConditionUnique:       8,
	ConditionText:         9,
	ConditionBlanks:       10,
	ConditionTimePeriod:   11,
	ConditionAboveAverage: 12,
	ConditionNoBlanks:     13,
	ConditionErrors:       16,
	ConditionNoErrors:     17,
}

// ParseConditionType validates a friendly condition name.
func ParseConditionType(s string) (ConditionType, error) {
	t := ConditionType(s)
	if _, ok := conditionTypeValues[t]; !ok {
		return "", fmt.Errorf("invalid 'condition' value %q", s)
	}
	return t, nil
}

// Operator is the comparison a cell-value condition applies.
type Operator string

const (
	OperatorBetween      Operator = "between"
	OperatorNotBetween   Operator = "not_between"
	OperatorEqual        Operator = "equal_to"
	OperatorNotEqual     Operator = "not_equal"
	OperatorGreater      Operator = "greater_than"
	OperatorLess         Operator = "less_than"
	OperatorGreaterEqual Operator = "greater_equal"
	OperatorLessEqual    Operator = "less_equal"
)

// operatorValues maps friendly names to XlFormatConditionOperator constants.
var operatorValues = map[Operator]int{
	OperatorBetween:      1,
	OperatorNotBetween:   2,
	OperatorEqual:        3,
	OperatorNotEqual:     4,
	OperatorGreater:      5,
	OperatorLess:         6,
	OperatorGreaterEqual: 7,
	OperatorLessEqual:    8,
}

// ParseOperator validates a friendly operator name.
func ParseOperator(s string) (Operator, error) {
	op := Operator(s)
	if _, ok := operatorValues[op]; !ok {
		return "", fmt.Errorf("invalid 'logic' value %q", s)
	}
	return op, nil
}

// Condition is a conditional formatting rule: what to test and the value(s)
// to test against. Value2 is only meaningful for the between operators.
type Condition struct {
	Type     ConditionType
	Operator Operator
	Value    string
	Value2   string
}

// alignment constants (XlHAlign / XlVAlign)
var hAlignValues = map[string]int{
	"left":   -4131,
	"center": -4108,
	"right":  -4152,
}

var vAlignValues = map[string]int{
	"top":    -4160,
	"center": -4108,
	"bottom": -4107,
}

// ParseHAlign validates a horizontal alignment name.
func ParseHAlign(s string) (int, error) {
	v, ok := hAlignValues[s]
	if !ok {
		return 0, fmt.Errorf("invalid horizontal alignment %q", s)
	}
	return v, nil
}

// ParseVAlign validates a vertical alignment name.
func ParseVAlign(s string) (int, error) {
	v, ok := vAlignValues[s]
	if !ok {
		return 0, fmt.Errorf("invalid vertical alignment %q", s)
	}
	return v, nil
}

// border line styles (XlLineStyle)
var lineStyleValues = map[string]int{
	"continuous":     1,
	"dash":           -4115,
	"dash_dot":       4,
	"dash_dot_dot":   5,
	"dot":            -4118,
	"double":         -4119,
	"slant_dash_dot": 13,
	"none":           -4142,
}

// border weights (XlBorderWeight)
var borderWeightValues = map[string]int{
	"hairline": 1,
	"thin":     2,
	"medium":   -4138,
	"thick":    4,
}

// excelizeBorderStyles maps the same friendly line styles to excelize's
// border style indices, approximating weight with the closest style.
var excelizeBorderStyles = map[string]int{
	"continuous":     1,
	"dash":           3,
	"dash_dot":       4,
	"dash_dot_dot":   5,
	"dot":            7,
	"double":         6,
	"slant_dash_dot": 13,
	"none":           0,
}

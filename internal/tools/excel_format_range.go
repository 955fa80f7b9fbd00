package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	excel "github.com/daniel-flint-26/exceltools/internal/excel"
	imcp "github.com/daniel-flint-26/exceltools/internal/mcp"
	"github.com/daniel-flint-26/exceltools/internal/ref"
)

type ExcelFormatRangeArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
	Range            string `zog:"range"`
	StartRow         int    `zog:"startRow"`
	EndRow           int    `zog:"endRow"`
	StartColumn      string `zog:"startColumn"`
	EndColumn        string `zog:"endColumn"`
}

var excelFormatRangeArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"range":            z.String(),
	"startRow":         z.Int(),
	"endRow":           z.Int(),
	"startColumn":      z.String(),
	"endColumn":        z.String(),
})

func AddExcelFormatRangeTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_format_range",
		mcp.WithDescription("Apply cell formatting (fill, font, borders, alignment, number format, merge) to a range"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Sheet name in the Excel file"),
		),
		mcp.WithString("range",
			mcp.Description("Range reference (e.g., \"A1:D20\"). Use either this or the start/end coordinates"),
		),
		mcp.WithNumber("startRow",
			mcp.Description("1-based first row, combined with the other three coordinates"),
		),
		mcp.WithNumber("endRow",
			mcp.Description("1-based last row"),
		),
		mcp.WithString("startColumn",
			mcp.Description("First column letters or 1-based number"),
		),
		mcp.WithString("endColumn",
			mcp.Description("Last column letters or 1-based number"),
		),
		mcp.WithObject("format",
			mcp.Required(),
			mcp.Description("Formatting options. Supported keys: "+strings.Join(excel.FormatOptionNames(), ", ")+
				". Colours are [r, g, b] triples"),
		),
	), WithRecovery(handleFormatRange))
}

func handleFormatRange(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelFormatRangeArguments{}
	if issues := excelFormatRangeArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	format, err := decodeCellFormat(request.GetArguments()["format"])
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}
	return formatRange(args, format)
}

// decodeCellFormat converts the raw format object to a CellFormat, rejecting
// unknown keys so typos do not silently no-op.
func decodeCellFormat(raw any) (*excel.CellFormat, error) {
	if raw == nil {
		return nil, fmt.Errorf("'format' must be an object; supported keys: %s", strings.Join(excel.FormatOptionNames(), ", "))
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid 'format' object: %w", err)
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	format := &excel.CellFormat{}
	if err := decoder.Decode(format); err != nil {
		return nil, fmt.Errorf("invalid 'format' object: %v; supported keys: %s", err, strings.Join(excel.FormatOptionNames(), ", "))
	}
	return format, nil
}

func formatRange(args ExcelFormatRangeArguments, format *excel.CellFormat) (*mcp.CallToolResult, error) {
	rng, err := ref.ResolveRange(args.Range, args.StartRow, args.EndRow, args.StartColumn, args.EndColumn)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	workbook, release, err := excel.OpenFile(args.FileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	worksheet, err := workbook.FindSheet(args.SheetName)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}
	defer worksheet.Release()

	if err := worksheet.FormatRange(rng, format); err != nil {
		return nil, err
	}
	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "# Notice\n"
	result += fmt.Sprintf("backend: %s\n", workbook.GetBackendName())
	result += fmt.Sprintf("Formatting applied to %s in sheet [%s].\n", rng, html.EscapeString(args.SheetName))
	return mcp.NewToolResultText(result), nil
}

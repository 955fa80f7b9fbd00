package tools

import (
	"context"
	"fmt"
	"html"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	excel "github.com/daniel-flint-26/exceltools/internal/excel"
	imcp "github.com/daniel-flint-26/exceltools/internal/mcp"
	"github.com/daniel-flint-26/exceltools/internal/ref"
)

type ExcelConditionalFormatArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
	Range            string `zog:"range"`
	StartRow         int    `zog:"startRow"`
	EndRow           int    `zog:"endRow"`
	StartColumn      string `zog:"startColumn"`
	EndColumn        string `zog:"endColumn"`
	Condition        string `zog:"condition"`
	Logic            string `zog:"logic"`
	Value            string `zog:"value"`
	Value2           string `zog:"value2"`
}

var excelConditionalFormatArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"range":            z.String(),
	"startRow":         z.Int(),
	"endRow":           z.Int(),
	"startColumn":      z.String(),
	"endColumn":        z.String(),
	"condition":        z.String().Required(),
	"logic":            z.String(),
	"value":            z.String(),
	"value2":           z.String(),
})

func AddExcelConditionalFormatTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_conditional_format",
		mcp.WithDescription("Add a conditional formatting rule to a range"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Sheet name in the Excel file"),
		),
		mcp.WithString("range",
			mcp.Description("Range reference (e.g., \"A1:A100\"). Use either this or the start/end coordinates"),
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
		mcp.WithString("condition",
			mcp.Required(),
			mcp.Description("Rule type: \"cell_value\", \"expression\", \"color_scale\", \"data_bar\", \"icon_set\", \"top_ten\", \"unique\", \"text\", \"is_blank\", \"no_blanks\", \"is_error\", \"no_errors\", \"time_period\" or \"above_average\""),
		),
		mcp.WithString("logic",
			mcp.Description("For \"cell_value\": \"between\", \"not_between\", \"equal_to\", \"not_equal\", \"greater_than\", \"less_than\", \"greater_equal\" or \"less_equal\""),
		),
		mcp.WithString("value",
			mcp.Description("Comparison value (or min value for the between operators)"),
		),
		mcp.WithString("value2",
			mcp.Description("Max value for the between operators"),
		),
		mcp.WithObject("format",
			mcp.Description("Formatting applied when the rule matches, same keys as excel_format_range"),
		),
	), WithRecovery(handleConditionalFormat))
}

func handleConditionalFormat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelConditionalFormatArguments{}
	if issues := excelConditionalFormatArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	var format *excel.CellFormat
	if raw := request.GetArguments()["format"]; raw != nil {
		var err error
		format, err = decodeCellFormat(raw)
		if err != nil {
			return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
		}
	}
	return conditionalFormat(args, format)
}

func conditionalFormat(args ExcelConditionalFormatArguments, format *excel.CellFormat) (*mcp.CallToolResult, error) {
	rng, err := ref.ResolveRange(args.Range, args.StartRow, args.EndRow, args.StartColumn, args.EndColumn)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}
	conditionType, err := excel.ParseConditionType(args.Condition)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}
	condition := excel.Condition{
		Type:   conditionType,
		Value:  args.Value,
		Value2: args.Value2,
	}
	if conditionType == excel.ConditionCellValue {
		if args.Logic == "" {
			return imcp.NewToolResultInvalidArgumentError("'logic' is required for the cell_value condition"), nil
		}
		operator, err := excel.ParseOperator(args.Logic)
		if err != nil {
			return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
		}
		condition.Operator = operator
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

	if err := worksheet.AddConditionalFormat(rng, condition, format); err != nil {
		return nil, err
	}
	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "# Notice\n"
	result += fmt.Sprintf("backend: %s\n", workbook.GetBackendName())
	result += fmt.Sprintf("Conditional formatting (%s) applied to %s in sheet [%s].\n",
		args.Condition, rng, html.EscapeString(args.SheetName))
	return mcp.NewToolResultText(result), nil
}

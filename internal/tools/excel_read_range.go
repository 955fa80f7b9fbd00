package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"html"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	excel "github.com/daniel-flint-26/exceltools/internal/excel"
	imcp "github.com/daniel-flint-26/exceltools/internal/mcp"
	"github.com/daniel-flint-26/exceltools/internal/ref"
)

type ExcelReadRangeArguments struct {
	FileAbsolutePath  string   `zog:"fileAbsolutePath"`
	SheetName         string   `zog:"sheetName"`
	Range             string   `zog:"range"`
	StartRow          int      `zog:"startRow"`
	EndRow            int      `zog:"endRow"`
	StartColumn       string   `zog:"startColumn"`
	EndColumn         string   `zog:"endColumn"`
	Header            bool     `zog:"header"`
	PageSize          int      `zog:"pageSize"`
	KnownPagingRanges []string `zog:"knownPagingRanges"`
}

var excelReadRangeArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath":  z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":         z.String().Required(),
	"range":             z.String(),
	"startRow":          z.Int(),
	"endRow":            z.Int(),
	"startColumn":       z.String(),
	"endColumn":         z.String(),
	"header":            z.Bool().Default(false),
	"pageSize":          z.Int(),
	"knownPagingRanges": z.Slice(z.String()),
})

func AddExcelReadRangeTool(server *server.MCPServer, defaultPageSize int) {
	server.AddTool(mcp.NewTool("excel_read_range",
		mcp.WithDescription("Read a rectangular range of cells as a table. When no range is given the whole used range is read page by page"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Sheet name in the Excel file"),
		),
		mcp.WithString("range",
			mcp.Description("Range reference (e.g., \"A1:D20\" or whole columns \"A:D\"). Use either this or the start/end coordinates"),
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
		mcp.WithBoolean("header",
			mcp.Description("Treat the first row of the range as column names (default false)"),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Max cell count per page for whole-sheet reads"),
		),
		mcp.WithArray("knownPagingRanges",
			mcp.Description("Paging ranges already read; they are skipped on whole-sheet reads"),
			mcp.Items(map[string]any{
				"type": "string",
			}),
		),
	), withDefaultPageSize(defaultPageSize))
}

func withDefaultPageSize(defaultPageSize int) server.ToolHandlerFunc {
	return WithRecovery(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := ExcelReadRangeArguments{}
		if issues := excelReadRangeArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
			return imcp.NewToolResultZogIssueMap(issues), nil
		}
		if args.PageSize == 0 {
			args.PageSize = defaultPageSize
		}
		return readRange(args)
	})
}

func readRange(args ExcelReadRangeArguments) (*mcp.CallToolResult, error) {
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

	hasRangeArgs := args.Range != "" || args.StartRow != 0 || args.EndRow != 0 ||
		args.StartColumn != "" || args.EndColumn != ""
	if hasRangeArgs {
		rng, err := ref.ResolveRange(args.Range, args.StartRow, args.EndRow, args.StartColumn, args.EndColumn)
		if err != nil {
			return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
		}
		return readOneRange(workbook, worksheet, args.SheetName, rng, args.Header, "")
	}

	// No range requested: page through the whole used range.
	strategy, err := worksheet.GetPagingStrategy(args.PageSize)
	if err != nil {
		return nil, err
	}
	service := excel.NewPagingRangeService(strategy)
	allRanges := service.GetPagingRanges()
	if len(allRanges) == 0 {
		result := "# Notice\n"
		result += fmt.Sprintf("backend: %s\n", workbook.GetBackendName())
		result += fmt.Sprintf("Sheet [%s] has no readable cells.\n", html.EscapeString(args.SheetName))
		return mcp.NewToolResultText(result), nil
	}
	remaining := service.FilterRemainingPagingRanges(allRanges, args.KnownPagingRanges)
	if len(remaining) == 0 {
		result := "# Notice\n"
		result += fmt.Sprintf("backend: %s\n", workbook.GetBackendName())
		result += "All paging ranges have been read.\n"
		return mcp.NewToolResultText(result), nil
	}

	target := remaining[0]
	rng, err := ref.ParseRange(target)
	if err != nil {
		return nil, err
	}
	return readOneRange(workbook, worksheet, args.SheetName, rng, args.Header, service.FindNextRange(remaining, target))
}

func readOneRange(workbook excel.Excel, worksheet excel.Worksheet, sheetName string, rng ref.Range, header bool, nextRange string) (*mcp.CallToolResult, error) {
	grid, err := worksheet.ReadRange(rng)
	if err != nil {
		return nil, err
	}
	table, err := excel.TableFromGrid(grid, header, rng.Start.Col)
	if err != nil {
		return nil, err
	}
	jsonData, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal table: %w", err)
	}

	result := "# Notice\n"
	result += fmt.Sprintf("backend: %s\n", workbook.GetBackendName())
	result += fmt.Sprintf("Sheet [%s] range %s:\n\n", html.EscapeString(sheetName), rng)
	result += "```json\n"
	result += string(jsonData) + "\n"
	result += "```\n"
	if nextRange != "" {
		result += "# Metadata\n"
		result += fmt.Sprintf("nextPagingRange: %s\n", nextRange)
	}
	return mcp.NewToolResultText(result), nil
}

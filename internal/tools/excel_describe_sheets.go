package tools

import (
	"context"
	"encoding/json"
	"fmt"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	excel "github.com/daniel-flint-26/exceltools/internal/excel"
	imcp "github.com/daniel-flint-26/exceltools/internal/mcp"
)

type ExcelDescribeSheetsArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
}

var excelDescribeSheetsArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
})

type sheetDescription struct {
	Name       string `json:"name"`
	Visibility string `json:"visibility"`
	Protected  bool   `json:"protected"`
	Dimension  string `json:"dimension,omitempty"`
}

func AddExcelDescribeSheetsTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_describe_sheets",
		mcp.WithDescription("List all sheets in the workbook with their visibility, protection state and used range"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
	), WithRecovery(handleDescribeSheets))
}

func handleDescribeSheets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelDescribeSheetsArguments{}
	if issues := excelDescribeSheetsArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return describeSheets(args.FileAbsolutePath)
}

func describeSheets(fileAbsolutePath string) (*mcp.CallToolResult, error) {
	workbook, release, err := excel.OpenFile(fileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	names, err := workbook.SheetNames()
	if err != nil {
		return nil, err
	}

	descriptions := make([]sheetDescription, 0, len(names))
	for _, name := range names {
		worksheet, err := workbook.FindSheet(name)
		if err != nil {
			return nil, err
		}
		visibility, err := worksheet.Visibility()
		if err != nil {
			worksheet.Release()
			return nil, err
		}
		protected, err := worksheet.Protected()
		if err != nil {
			worksheet.Release()
			return nil, err
		}
		// dimension is best-effort: an empty sheet has none
		dimension, _ := worksheet.Dimension()
		worksheet.Release()

		descriptions = append(descriptions, sheetDescription{
			Name:       name,
			Visibility: string(visibility),
			Protected:  protected,
			Dimension:  dimension,
		})
	}

	jsonData, err := json.MarshalIndent(descriptions, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sheet list: %w", err)
	}

	result := "# Notice\n"
	result += fmt.Sprintf("backend: %s\n", workbook.GetBackendName())
	result += fmt.Sprintf("Found %d sheet(s):\n\n", len(descriptions))
	result += "```json\n"
	result += string(jsonData) + "\n"
	result += "```\n"
	return mcp.NewToolResultText(result), nil
}

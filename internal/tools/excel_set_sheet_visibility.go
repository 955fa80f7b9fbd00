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
)

type ExcelSetSheetVisibilityArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
	Visibility       string `zog:"visibility"`
}

var excelSetSheetVisibilityArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"visibility":       z.String().Required(),
})

func AddExcelSetSheetVisibilityTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_set_sheet_visibility",
		mcp.WithDescription("Show or hide a sheet. \"very hidden\" sheets can only be re-shown through this tool, not the host UI"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Sheet name in the Excel file"),
		),
		mcp.WithString("visibility",
			mcp.Required(),
			mcp.Description("One of \"visible\", \"hidden\", \"very hidden\""),
		),
	), WithRecovery(handleSetSheetVisibility))
}

func handleSetSheetVisibility(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelSetSheetVisibilityArguments{}
	if issues := excelSetSheetVisibilityArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return setSheetVisibility(args.FileAbsolutePath, args.SheetName, args.Visibility)
}

func setSheetVisibility(fileAbsolutePath string, sheetName string, visibility string) (*mcp.CallToolResult, error) {
	parsed, err := excel.ParseVisibility(visibility)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	workbook, release, err := excel.OpenFile(fileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	worksheet, err := workbook.FindSheet(sheetName)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}
	defer worksheet.Release()

	if err := worksheet.SetVisibility(parsed); err != nil {
		return nil, err
	}
	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "# Notice\n"
	result += fmt.Sprintf("backend: %s\n", workbook.GetBackendName())
	result += fmt.Sprintf("Sheet [%s] is now %s.\n", html.EscapeString(sheetName), parsed)
	return mcp.NewToolResultText(result), nil
}

package tools

import (
	"context"
	"fmt"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	excel "github.com/daniel-flint-26/exceltools/internal/excel"
	imcp "github.com/daniel-flint-26/exceltools/internal/mcp"
)

type ExcelSaveAsArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	NewAbsolutePath  string `zog:"newAbsolutePath"`
}

var excelSaveAsArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"newAbsolutePath":  z.String().Test(AbsolutePathTest()).Required(),
})

func AddExcelSaveAsTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_save_as",
		mcp.WithDescription("Save a copy of the workbook to a new path"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("newAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to save the copy to"),
		),
	), WithRecovery(handleSaveAs))
}

func handleSaveAs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelSaveAsArguments{}
	if issues := excelSaveAsArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return saveAs(args.FileAbsolutePath, args.NewAbsolutePath)
}

func saveAs(fileAbsolutePath string, newAbsolutePath string) (*mcp.CallToolResult, error) {
	workbook, release, err := excel.OpenFile(fileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := workbook.SaveAs(newAbsolutePath); err != nil {
		return nil, err
	}

	result := "# Notice\n"
	result += fmt.Sprintf("backend: %s\n", workbook.GetBackendName())
	result += fmt.Sprintf("Workbook saved as %s.\n", newAbsolutePath)
	return mcp.NewToolResultText(result), nil
}

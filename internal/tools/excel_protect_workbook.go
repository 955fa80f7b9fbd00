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

type ExcelProtectWorkbookArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	Password         string `zog:"password"`
}

var excelProtectWorkbookArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"password":         z.String(),
})

func AddExcelProtectWorkbookTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_protect_workbook",
		mcp.WithDescription("Protect the workbook structure so sheets cannot be added, deleted or reordered"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("password",
			mcp.Description("Protection password (empty for none)"),
		),
	), WithRecovery(handleProtectWorkbook))
}

func handleProtectWorkbook(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelProtectWorkbookArguments{}
	if issues := excelProtectWorkbookArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return protectWorkbook(args.FileAbsolutePath, args.Password)
}

func protectWorkbook(fileAbsolutePath string, password string) (*mcp.CallToolResult, error) {
	workbook, release, err := excel.OpenFile(fileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := workbook.Protect(password); err != nil {
		return nil, err
	}
	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "# Notice\n"
	result += fmt.Sprintf("backend: %s\n", workbook.GetBackendName())
	result += "Workbook structure protected.\n"
	return mcp.NewToolResultText(result), nil
}

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

type ExcelUnprotectSheetArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
	Password         string `zog:"password"`
}

var excelUnprotectSheetArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"password":         z.String(),
})

func AddExcelUnprotectSheetTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_unprotect_sheet",
		mcp.WithDescription("Remove protection from a sheet"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Sheet name in the Excel file"),
		),
		mcp.WithString("password",
			mcp.Description("Protection password, if one was set"),
		),
	), WithRecovery(handleUnprotectSheet))
}

func handleUnprotectSheet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelUnprotectSheetArguments{}
	if issues := excelUnprotectSheetArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return unprotectSheet(args.FileAbsolutePath, args.SheetName, args.Password)
}

func unprotectSheet(fileAbsolutePath string, sheetName string, password string) (*mcp.CallToolResult, error) {
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

	// the OLE backend reports the live protection state; excelize always
	// reports false and unprotects unconditionally
	protected, err := worksheet.Protected()
	if err != nil {
		return nil, err
	}
	if workbook.GetBackendName() == "ole" && !protected {
		result := "# Notice\n"
		result += fmt.Sprintf("backend: %s\n", workbook.GetBackendName())
		result += fmt.Sprintf("Sheet [%s] is not protected.\n", html.EscapeString(sheetName))
		return mcp.NewToolResultText(result), nil
	}

	if err := worksheet.Unprotect(password); err != nil {
		return nil, err
	}
	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "# Notice\n"
	result += fmt.Sprintf("backend: %s\n", workbook.GetBackendName())
	result += fmt.Sprintf("Sheet [%s] unprotected.\n", html.EscapeString(sheetName))
	return mcp.NewToolResultText(result), nil
}

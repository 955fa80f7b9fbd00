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

type ExcelProtectSheetArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
	Password         string `zog:"password"`
	DrawingObjects   bool   `zog:"drawingObjects"`
	Contents         bool   `zog:"contents"`
	Scenarios        bool   `zog:"scenarios"`
	AllowSort        bool   `zog:"allowSort"`
	AllowFilter      bool   `zog:"allowFilter"`
	EnableSelection  bool   `zog:"enableSelection"`
}

var excelProtectSheetArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"password":         z.String(),
	"drawingObjects":   z.Bool().Default(true),
	"contents":         z.Bool().Default(true),
	"scenarios":        z.Bool().Default(true),
	"allowSort":        z.Bool().Default(false),
	"allowFilter":      z.Bool().Default(false),
	"enableSelection":  z.Bool().Default(true),
})

func AddExcelProtectSheetTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_protect_sheet",
		mcp.WithDescription("Protect a sheet against edits, optionally with a password"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Sheet name in the Excel file"),
		),
		mcp.WithString("password",
			mcp.Description("Protection password (empty for none)"),
		),
		mcp.WithBoolean("drawingObjects",
			mcp.Description("Protect drawing objects (default true)"),
		),
		mcp.WithBoolean("contents",
			mcp.Description("Protect cell contents (default true)"),
		),
		mcp.WithBoolean("scenarios",
			mcp.Description("Protect scenarios (default true)"),
		),
		mcp.WithBoolean("allowSort",
			mcp.Description("Allow sorting while protected (default false)"),
		),
		mcp.WithBoolean("allowFilter",
			mcp.Description("Allow filtering while protected (default false)"),
		),
		mcp.WithBoolean("enableSelection",
			mcp.Description("Allow selecting cells while protected (default true)"),
		),
	), WithRecovery(handleProtectSheet))
}

func handleProtectSheet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelProtectSheetArguments{}
	if issues := excelProtectSheetArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return protectSheet(args)
}

func protectSheet(args ExcelProtectSheetArguments) (*mcp.CallToolResult, error) {
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

	protected, err := worksheet.Protected()
	if err != nil {
		return nil, err
	}
	if protected {
		result := "# Notice\n"
		result += fmt.Sprintf("backend: %s\n", workbook.GetBackendName())
		result += fmt.Sprintf("Sheet [%s] is already protected.\n", html.EscapeString(args.SheetName))
		return mcp.NewToolResultText(result), nil
	}

	opts := excel.ProtectOptions{
		DrawingObjects:  args.DrawingObjects,
		Contents:        args.Contents,
		Scenarios:       args.Scenarios,
		AllowSort:       args.AllowSort,
		AllowFilter:     args.AllowFilter,
		EnableSelection: args.EnableSelection,
	}
	if err := worksheet.Protect(args.Password, opts); err != nil {
		return nil, err
	}
	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "# Notice\n"
	result += fmt.Sprintf("backend: %s\n", workbook.GetBackendName())
	result += fmt.Sprintf("Sheet [%s] protected.\n", html.EscapeString(args.SheetName))
	return mcp.NewToolResultText(result), nil
}

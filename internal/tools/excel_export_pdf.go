package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	excel "github.com/daniel-flint-26/exceltools/internal/excel"
	imcp "github.com/daniel-flint-26/exceltools/internal/mcp"
)

type ExcelExportPdfArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	PdfAbsolutePath  string `zog:"pdfAbsolutePath"`
	SheetName        string `zog:"sheetName"`
}

var excelExportPdfArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"pdfAbsolutePath":  z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String(),
})

func AddExcelExportPdfTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_export_pdf",
		mcp.WithDescription("Export the workbook, or a single sheet, to a PDF file. Requires a running Excel instance"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("pdfAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path of the PDF to write; must end in .pdf"),
		),
		mcp.WithString("sheetName",
			mcp.Description("Export only this sheet (default: the whole workbook)"),
		),
	), WithRecovery(handleExportPdf))
}

func handleExportPdf(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelExportPdfArguments{}
	if issues := excelExportPdfArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return exportPdf(args.FileAbsolutePath, args.PdfAbsolutePath, args.SheetName)
}

func exportPdf(fileAbsolutePath string, pdfAbsolutePath string, sheetName string) (*mcp.CallToolResult, error) {
	if !strings.HasSuffix(strings.ToLower(pdfAbsolutePath), ".pdf") {
		return imcp.NewToolResultInvalidArgumentError("pdfAbsolutePath must end in .pdf"), nil
	}

	workbook, release, err := excel.OpenFile(fileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := workbook.ExportPDF(pdfAbsolutePath, sheetName); err != nil {
		if errors.Is(err, excel.ErrRequiresHost) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, err
	}

	result := "# Notice\n"
	result += fmt.Sprintf("backend: %s\n", workbook.GetBackendName())
	if sheetName != "" {
		result += fmt.Sprintf("Sheet [%s] exported to %s.\n", sheetName, pdfAbsolutePath)
	} else {
		result += fmt.Sprintf("Workbook exported to %s.\n", pdfAbsolutePath)
	}
	return mcp.NewToolResultText(result), nil
}

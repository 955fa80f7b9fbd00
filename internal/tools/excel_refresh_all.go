package tools

import (
	"context"
	"errors"
	"fmt"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	excel "github.com/daniel-flint-26/exceltools/internal/excel"
	imcp "github.com/daniel-flint-26/exceltools/internal/mcp"
)

type ExcelRefreshAllArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
}

var excelRefreshAllArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
})

func AddExcelRefreshAllTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_refresh_all",
		mcp.WithDescription("Refresh all data connections and pivot tables in the workbook. Requires a running Excel instance"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
	), WithRecovery(handleRefreshAll))
}

func handleRefreshAll(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelRefreshAllArguments{}
	if issues := excelRefreshAllArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return refreshAll(args.FileAbsolutePath)
}

func refreshAll(fileAbsolutePath string) (*mcp.CallToolResult, error) {
	workbook, release, err := excel.OpenFile(fileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := workbook.RefreshAll(); err != nil {
		if errors.Is(err, excel.ErrRequiresHost) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, err
	}
	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "# Notice\n"
	result += fmt.Sprintf("backend: %s\n", workbook.GetBackendName())
	result += "All connections and pivot tables refreshed.\n"
	return mcp.NewToolResultText(result), nil
}

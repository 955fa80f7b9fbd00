package server

import (
	"runtime"

	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"

	"github.com/daniel-flint-26/exceltools/internal/config"
	"github.com/daniel-flint-26/exceltools/internal/tools"
)

type ExcelServer struct {
	server *server.MCPServer
}

func New(version string, cfg config.Config) *ExcelServer {
	s := &ExcelServer{}
	s.server = server.NewMCPServer(
		"exceltools",
		version,
	)
	tools.AddExcelDescribeSheetsTool(s.server)
	tools.AddExcelReadCellTool(s.server)
	tools.AddExcelReadRangeTool(s.server, cfg.PageSize)
	tools.AddExcelWriteCellTool(s.server)
	tools.AddExcelWriteRowTool(s.server)
	tools.AddExcelWriteTableTool(s.server)
	tools.AddExcelDeleteSheetTool(s.server)
	tools.AddExcelSetSheetVisibilityTool(s.server)
	tools.AddExcelProtectSheetTool(s.server)
	tools.AddExcelUnprotectSheetTool(s.server)
	tools.AddExcelProtectWorkbookTool(s.server)
	tools.AddExcelUnprotectWorkbookTool(s.server)
	tools.AddExcelFormatRangeTool(s.server)
	tools.AddExcelConditionalFormatTool(s.server)
	tools.AddExcelRefreshAllTool(s.server)
	tools.AddExcelResetCursorTool(s.server)
	tools.AddExcelSaveAsTool(s.server)
	tools.AddExcelExportPdfTool(s.server)
	// Live Excel control needs COM, so these only exist on Windows
	if runtime.GOOS == "windows" {
		tools.AddExcelListWorkbooksTool(s.server)
		tools.AddExcelOpenWorkbookTool(s.server)
		tools.AddExcelRunMacroTool(s.server)
	} else {
		log.Debug("live workbook tools disabled: not running on Windows")
	}
	return s
}

func (s *ExcelServer) Start() error {
	return server.ServeStdio(s.server)
}

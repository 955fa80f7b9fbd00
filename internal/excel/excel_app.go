package excel

// ExcelApp is a connection to the host application itself, as opposed to a
// specific workbook file. It backs the live-control features: listing open
// workbooks, opening files in the host, and running macros.
type ExcelApp interface {
	// ListWorkbooks returns information about all currently open workbooks.
	ListWorkbooks() ([]WorkbookInfo, error)
	// OpenWorkbook opens a workbook file in the host and makes it visible.
	// If the file does not exist, a new workbook is created and saved there.
	OpenWorkbook(absolutePath string) error
	// CreateWorkbook creates a new workbook and saves it to the specified path.
	CreateWorkbook(absolutePath string) error
	// RunMacro runs a VBA macro in the host.
	RunMacro(macroName string, args []string) (string, error)
	// Release releases the COM resources associated with this ExcelApp.
	Release()
}

// WorkbookInfo describes one open workbook.
type WorkbookInfo struct {
	Name     string `json:"name"`
	FullPath string `json:"fullPath"`
	Saved    bool   `json:"saved"`
}

// NewExcelApp connects to the running host application, launching one when
// none is running. On platforms without COM this returns an error.
func NewExcelApp() (ExcelApp, error) {
	return newExcelAppPlatform()
}

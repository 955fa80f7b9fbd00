package excel

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	log "github.com/sirupsen/logrus"
)

type oleExcelApp struct {
	application *ole.IDispatch
}

func newExcelAppPlatform() (ExcelApp, error) {
	runtime.LockOSThread()
	ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED)

	// Attach to an already-running host instance first
	unknown, err := oleutil.GetActiveObject("Excel.Application")
	if err == nil {
		excel, err := unknown.QueryInterface(ole.IID_IDispatch)
		if err == nil {
			log.Debug("attached to running host application")
			return &oleExcelApp{application: excel}, nil
		}
	}

	// No host running, launch a new instance
	unknown2, err := oleutil.CreateObject("Excel.Application")
	if err != nil {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("failed to launch host application: %w", err)
	}
	excel, err := unknown2.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("failed to query host interface: %w", err)
	}
	if _, err := oleutil.PutProperty(excel, "Visible", true); err != nil {
		excel.Release()
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("failed to set Visible: %w", err)
	}
	log.Debug("launched new host application instance")
	return &oleExcelApp{application: excel}, nil
}

func (a *oleExcelApp) Release() {
	if a.application != nil {
		a.application.Release()
	}
	ole.CoUninitialize()
	runtime.UnlockOSThread()
}

func (a *oleExcelApp) ListWorkbooks() ([]WorkbookInfo, error) {
	workbooksProp, err := oleutil.GetProperty(a.application, "Workbooks")
	if err != nil {
		return nil, fmt.Errorf("failed to get Workbooks: %w", err)
	}
	workbooks := workbooksProp.ToIDispatch()
	defer workbooks.Release()

	countProp, err := oleutil.GetProperty(workbooks, "Count")
	if err != nil {
		return nil, fmt.Errorf("failed to get Workbooks.Count: %w", err)
	}
	count := int(countProp.Val)

	var result []WorkbookInfo
	for i := 1; i <= count; i++ {
		wbProp, err := oleutil.GetProperty(workbooks, "Item", i)
		if err != nil {
			continue
		}
		wb := wbProp.ToIDispatch()

		nameProp, err := oleutil.GetProperty(wb, "Name")
		if err != nil {
			wb.Release()
			continue
		}
		fullNameProp, err := oleutil.GetProperty(wb, "FullName")
		if err != nil {
			wb.Release()
			continue
		}
		savedProp, err := oleutil.GetProperty(wb, "Saved")
		if err != nil {
			wb.Release()
			continue
		}

		result = append(result, WorkbookInfo{
			Name:     nameProp.ToString(),
			FullPath: fullNameProp.ToString(),
			Saved:    savedProp.Val != 0,
		})
		wb.Release()
	}
	return result, nil
}

func (a *oleExcelApp) OpenWorkbook(absolutePath string) error {
	if _, err := os.Stat(absolutePath); os.IsNotExist(err) {
		log.WithField("path", absolutePath).Debug("workbook does not exist, creating")
		return a.CreateWorkbook(absolutePath)
	}

	workbooksProp, err := oleutil.GetProperty(a.application, "Workbooks")
	if err != nil {
		return fmt.Errorf("failed to get Workbooks: %w", err)
	}
	workbooks := workbooksProp.ToIDispatch()
	defer workbooks.Release()

	if _, err := oleutil.CallMethod(workbooks, "Open", absolutePath); err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	if _, err := oleutil.PutProperty(a.application, "Visible", true); err != nil {
		return fmt.Errorf("failed to set Visible: %w", err)
	}
	return nil
}

func (a *oleExcelApp) CreateWorkbook(absolutePath string) error {
	workbooksProp, err := oleutil.GetProperty(a.application, "Workbooks")
	if err != nil {
		return fmt.Errorf("failed to get Workbooks: %w", err)
	}
	workbooks := workbooksProp.ToIDispatch()
	defer workbooks.Release()

	wbResult, err := oleutil.CallMethod(workbooks, "Add")
	if err != nil {
		return fmt.Errorf("failed to create workbook: %w", err)
	}
	wb := wbResult.ToIDispatch()
	defer wb.Release()

	if _, err := oleutil.CallMethod(wb, "SaveAs", absolutePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	if _, err := oleutil.PutProperty(a.application, "Visible", true); err != nil {
		return fmt.Errorf("failed to set Visible: %w", err)
	}
	return nil
}

func (a *oleExcelApp) RunMacro(macroName string, args []string) (string, error) {
	// Application.Run(macroName, arg1, arg2, ..., arg10)
	callArgs := make([]interface{}, 0, 1+len(args))
	callArgs = append(callArgs, macroName)
	for _, arg := range args {
		callArgs = append(callArgs, arg)
	}

	result, err := oleutil.CallMethod(a.application, "Run", callArgs...)
	if err != nil {
		return "", fmt.Errorf("failed to run macro '%s': %w", macroName, err)
	}

	if result.Val == 0 {
		return "", nil
	}
	return fmt.Sprintf("%v", result.Value()), nil
}

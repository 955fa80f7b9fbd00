package excel

import (
	"fmt"

	"github.com/daniel-flint-26/exceltools/internal/ref"
)

// PagingStrategy defines the interface for calculating paging ranges.
type PagingStrategy interface {
	// CalculatePagingRanges returns a list of available paging ranges.
	CalculatePagingRanges() []string
}

// FixedSizePagingStrategy splits a worksheet's used range into pages with a
// fixed cell count each, so large reads can be fetched range by range.
type FixedSizePagingStrategy struct {
	pageSize  int
	dimension string
}

// NewFixedSizePagingStrategy creates a paging strategy over the worksheet's
// current dimension.
func NewFixedSizePagingStrategy(pageSize int, worksheet Worksheet) (*FixedSizePagingStrategy, error) {
	if pageSize <= 0 {
		pageSize = 5000
	}
	if worksheet == nil {
		return nil, fmt.Errorf("worksheet is nil")
	}
	dimension, err := worksheet.Dimension()
	if err != nil {
		return nil, fmt.Errorf("failed to get dimension: %w", err)
	}
	return &FixedSizePagingStrategy{
		pageSize:  pageSize,
		dimension: dimension,
	}, nil
}

// CalculatePagingRanges generates paging ranges based on fixed cell count.
func (s *FixedSizePagingStrategy) CalculatePagingRanges() []string {
	return calculateFixedSizeRanges(s.dimension, s.pageSize)
}

func calculateFixedSizeRanges(dimension string, pageSize int) []string {
	rng, err := ref.ParseRange(dimension)
	if err != nil || rng.Cols {
		return []string{}
	}

	totalCols := rng.End.Col - rng.Start.Col + 1
	rowsPerPage := pageSize / totalCols
	if rowsPerPage < 1 {
		rowsPerPage = 1
	}

	var ranges []string
	currentRow := rng.Start.Row
	for currentRow <= rng.End.Row {
		pageEndRow := currentRow + rowsPerPage - 1
		if pageEndRow > rng.End.Row {
			pageEndRow = rng.End.Row
		}
		page := ref.Range{
			Start: ref.Cell{Row: currentRow, Col: rng.Start.Col},
			End:   ref.Cell{Row: pageEndRow, Col: rng.End.Col},
		}
		ranges = append(ranges, page.String())
		currentRow = pageEndRow + 1
	}
	return ranges
}

// PagingRangeService provides paging operations.
type PagingRangeService struct {
	strategy PagingStrategy
}

// NewPagingRangeService creates a new PagingRangeService instance.
func NewPagingRangeService(strategy PagingStrategy) *PagingRangeService {
	return &PagingRangeService{strategy: strategy}
}

// GetPagingRanges returns a list of available paging ranges.
func (s *PagingRangeService) GetPagingRanges() []string {
	return s.strategy.CalculatePagingRanges()
}

// FilterRemainingPagingRanges returns ranges that are not in knownRanges.
func (s *PagingRangeService) FilterRemainingPagingRanges(allRanges []string, knownRanges []string) []string {
	if len(knownRanges) == 0 {
		return allRanges
	}
	knownMap := make(map[string]bool)
	for _, r := range knownRanges {
		knownMap[r] = true
	}
	remaining := make([]string, 0)
	for _, r := range allRanges {
		if !knownMap[r] {
			remaining = append(remaining, r)
		}
	}
	return remaining
}

// FindNextRange returns the next range in the sequence after the current range.
func (s *PagingRangeService) FindNextRange(allRanges []string, currentRange string) string {
	for i, r := range allRanges {
		if r == currentRange && i+1 < len(allRanges) {
			return allRanges[i+1]
		}
	}
	return ""
}

package locator

import "fmt"

// records the outcome of loading a dataset for reporting
type LoadResult struct {
	Lines      int // dataset lines read
	Inserted   int // records stored, two per line at most
	Duplicates int // records skipped because their key was already stored
}

func (lr *LoadResult) String() string {
	return fmt.Sprintf("Lines: %d, Inserted records: %d, Skipped duplicates: %d", lr.Lines, lr.Inserted, lr.Duplicates)
}

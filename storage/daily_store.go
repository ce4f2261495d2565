package storage

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/cuisine-de-lin/order-board-api/models"
)

// DailyStore writes the end-of-day archive documents. Archives are
// append-only by date and never read back by the application.
type DailyStore struct {
	dir string
}

// NewDailyStore creates a store writing into dir (one pair of files per day).
func NewDailyStore(dir string) *DailyStore {
	return &DailyStore{dir: dir}
}

// SaveReport writes items-<date>.json and orders-<date>.json for the given
// report and returns both paths. Re-saving the same date overwrites the
// previous pair.
func (s *DailyStore) SaveReport(report models.DailyReport) (itemsFile, ordersFile string, err error) {
	savedAt := time.Now().Format(time.RFC3339)

	itemsFile = filepath.Join(s.dir, fmt.Sprintf("items-%s.json", report.Date))
	ordersFile = filepath.Join(s.dir, fmt.Sprintf("orders-%s.json", report.Date))

	if err := writeJSONFileAtomic(itemsFile, models.DailyItemsFile{
		Date:        report.Date,
		ItemsStats:  report.ItemsStats,
		ExtrasStats: report.ExtrasStats,
		SavedAt:     savedAt,
	}); err != nil {
		return "", "", err
	}

	if err := writeJSONFileAtomic(ordersFile, models.DailyOrdersFile{
		Date:    report.Date,
		Orders:  report.Orders,
		SavedAt: savedAt,
	}); err != nil {
		return "", "", err
	}

	return itemsFile, ordersFile, nil
}

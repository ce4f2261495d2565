package models

// DailyReport is the end-of-day archive payload sent by the till before it
// resets the active order list.
type DailyReport struct {
	Date        string         `json:"date"`
	ItemsStats  map[string]int `json:"itemsStats"`
	ExtrasStats map[string]int `json:"extrasStats"`
	Orders      []Order        `json:"orders"`
}

// DailyItemsFile is the per-day item statistics document.
type DailyItemsFile struct {
	Date        string         `json:"date"`
	ItemsStats  map[string]int `json:"itemsStats"`
	ExtrasStats map[string]int `json:"extrasStats"`
	SavedAt     string         `json:"savedAt"`
}

// DailyOrdersFile is the per-day raw order archive document.
type DailyOrdersFile struct {
	Date    string  `json:"date"`
	Orders  []Order `json:"orders"`
	SavedAt string  `json:"savedAt"`
}

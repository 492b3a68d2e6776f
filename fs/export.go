// Package fs exports scraped menu items to CSV and JSON files.
package fs

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jwalczak/menuscan"
)

// csvHeader is the flattened column set: one row per price entry, items
// without prices get a single row with an empty price column.
var csvHeader = []string{
	"sr_no", "restaurant_name", "restaurant_url", "menu_type",
	"section", "name", "description", "price_label", "price", "currency",
}

// WriteCSV writes items to path as a flattened CSV. The file is written
// atomically: a temp file in the same directory renamed over the target.
func WriteCSV(path string, items []*menuscan.MenuItem) error {
	return writeAtomic(path, func(f *os.File) error {
		w := csv.NewWriter(f)
		if err := w.Write(csvHeader); err != nil {
			return err
		}

		srNo := 0
		writeRow := func(item *menuscan.MenuItem, label, amount, currency string) error {
			srNo++
			return w.Write([]string{
				strconv.Itoa(srNo),
				item.RestaurantName,
				item.RestaurantURL,
				item.MenuName,
				item.Section,
				item.Name,
				item.Description,
				label,
				amount,
				currency,
			})
		}

		for _, item := range items {
			if len(item.Prices) == 0 {
				if err := writeRow(item, "", "", ""); err != nil {
					return err
				}
				continue
			}
			for _, p := range item.Prices {
				label := p.Label
				if p.IsAddon && label == "" {
					label = "add-on"
				}
				if err := writeRow(item, label, p.Amount.StringFixed(2), p.Currency); err != nil {
					return err
				}
			}
		}

		w.Flush()
		return w.Error()
	})
}

// WriteJSON writes items to path as indented JSON, atomically.
func WriteJSON(path string, items []*menuscan.MenuItem) error {
	return writeAtomic(path, func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	})
}

// writeAtomic writes via a temp file in the target directory so readers
// never observe a partial export.
func writeAtomic(path string, write func(f *os.File) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

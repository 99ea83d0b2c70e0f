package cli

import (
	"fmt"
	"os"
)

// initDataFiles creates the data directory and writes header-only CSV files
// for any store file that does not exist yet. Existing files are left alone.
func (a *App) initDataFiles() error {
	if err := os.MkdirAll(a.cfg.Storage.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir %s: %w", a.cfg.Storage.DataDir, err)
	}

	salesPath := a.cfg.Storage.SalesPath()
	if _, err := os.Stat(salesPath); os.IsNotExist(err) {
		if err := a.salesStore.Save(nil); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Created %s.\n", salesPath)
	} else {
		fmt.Fprintf(a.out, "%s already exists, leaving it alone.\n", salesPath)
	}

	inventoryPath := a.cfg.Storage.InventoryPath()
	if _, err := os.Stat(inventoryPath); os.IsNotExist(err) {
		if err := a.inventoryStore.Save(nil); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Created %s.\n", inventoryPath)
	} else {
		fmt.Fprintf(a.out, "%s already exists, leaving it alone.\n", inventoryPath)
	}

	return nil
}

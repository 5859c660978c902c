package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/internal/loader"
	"github.com/jmallard/shelfwatch/internal/outwriter"
	"github.com/jmallard/shelfwatch/schema"
)

// ExecuteInventory runs the inventory overview and prints results to stdout.
// It serves as the main entry point for the 'inventory' command.
func ExecuteInventory(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	report, duration, err := GetInventoryReport(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.PrintInventoryReport(report, cfg, duration)
}

// GetInventoryReport loads the filtered snapshot and computes its KPI
// columns and aggregates without printing the report itself.
func GetInventoryReport(ctx context.Context, cfg *contract.Config) (*schema.InventoryReport, time.Duration, error) {
	start := time.Now()

	if !shouldSuppressHeader(ctx) {
		outwriter.LogInventoryHeader(cfg)
	}

	records, err := loadFilteredInventory(ctx, cfg)
	if err != nil {
		return nil, 0, err
	}

	return BuildInventoryReport(records), time.Since(start), nil
}

// loadFilteredInventory loads the inventory snapshot and narrows it to the
// configured scope.
func loadFilteredInventory(ctx context.Context, cfg *contract.Config) ([]schema.InventoryRecord, error) {
	records, err := loadInventoryRecords(ctx, cfg)
	if err != nil {
		return nil, err
	}

	skuList, err := loadSKUFilter(cfg)
	if err != nil {
		return nil, err
	}

	return FilterInventory(cfg, records, skuList), nil
}

// loadInventoryRecords reads the snapshot from the first available source.
// NetSuite credentials are honored first but the integration is inert, so
// in practice the local CSV or SQLite snapshot serves the data.
func loadInventoryRecords(ctx context.Context, cfg *contract.Config) ([]schema.InventoryRecord, error) {
	if cfg.NetSuiteAccount != "" && cfg.NetSuiteToken != "" {
		ns := loader.NewNetSuiteSource(cfg.NetSuiteAccount, cfg.NetSuiteToken)
		records, err := ns.LoadInventory(ctx)
		if err == nil {
			return records, nil
		}
		contract.LogWarn("NetSuite snapshot unavailable, using local data", err)
	}

	source := selectInventorySource(cfg)
	records, err := source.LoadInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading inventory from %s: %w", source.Describe(), err)
	}
	return records, nil
}

// selectInventorySource picks the local snapshot source: the CSV when one
// was found or configured, otherwise the SQLite fallback.
func selectInventorySource(cfg *contract.Config) contract.InventorySource {
	if cfg.InventoryFile != "" {
		return loader.NewInventoryCSVSource(cfg.InventoryFile)
	}
	return loader.NewInventoryDBSource(cfg.InventoryDB)
}

// loadSKUFilter reads the optional SKU list file. No configured file means
// no SKU filtering.
func loadSKUFilter(cfg *contract.Config) ([]string, error) {
	if cfg.SKUFile == "" {
		return nil, nil
	}
	skuList, err := loader.LoadSKUList(cfg.SKUFile)
	if err != nil {
		return nil, fmt.Errorf("loading SKU list from %s: %w", cfg.SKUFile, err)
	}
	return skuList, nil
}

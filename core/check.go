package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/schema"
)

// ExecuteCheck runs the reorder gate for CI/CD and cron usage.
// It loads the filtered inventory snapshot, flags every record below its
// reorder point, and exits non-zero if any alert exists.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	result, duration, err := GetReorderAlerts(ctx, cfg)
	if err != nil {
		return err
	}

	printCheckResult(cfg, result, duration)

	// Return error if check failed
	if !result.Passed {
		fmt.Printf("%d alert(s) found\n", len(result.Alerts))
		os.Exit(1)
	}
	return nil
}

// GetReorderAlerts loads the filtered snapshot and flags every record below
// its reorder point, without printing or exiting.
func GetReorderAlerts(ctx context.Context, cfg *contract.Config) (*schema.CheckResult, time.Duration, error) {
	start := time.Now()

	records, err := loadFilteredInventory(ctx, cfg)
	if err != nil {
		return nil, 0, err
	}

	return EvaluateReorder(cfg, records), time.Since(start), nil
}

// EvaluateReorder flags every record whose units on hand sit strictly below
// its reorder point. Alerts come back sorted by shortfall ratio with
// severity labels already attached.
func EvaluateReorder(cfg *contract.Config, records []schema.InventoryRecord) *schema.CheckResult {
	alerts := make([]schema.ReorderAlert, 0)
	for _, r := range records {
		if !r.LowStock() {
			continue
		}
		alerts = append(alerts, schema.ReorderAlert{
			Item:         r.Item,
			Location:     r.Location,
			UnitsLeft:    r.UnitsLeft,
			ReorderPoint: r.ReorderPoint,
			Shortfall:    r.ReorderPoint - r.UnitsLeft,
		})
	}
	alerts = schema.EnrichAlerts(rankAlerts(alerts))

	return &schema.CheckResult{
		Passed:       len(alerts) == 0,
		Alerts:       alerts,
		TotalRecords: len(records),
		Region:       cfg.Region,
	}
}

// printCheckResult prints the check result in a concise format suitable for CI/CD.
func printCheckResult(cfg *contract.Config, result *schema.CheckResult, duration time.Duration) {
	printCheckScope(result, duration)

	if result.Passed {
		printCheckSuccess(cfg, result)
	} else {
		printCheckFailure(cfg, result)
	}
}

// printCheckScope prints the common header information for check results.
func printCheckScope(result *schema.CheckResult, duration time.Duration) {
	fmt.Println("Reorder Check Results:")

	// Define labels and values for dynamic padding
	labels := []string{"Region:", "Records:"}
	values := []any{result.Region, result.TotalRecords}

	// Find the longest label for consistent padding
	maxLabelLen := 0
	for _, label := range labels {
		if len(label) > maxLabelLen {
			maxLabelLen = len(label)
		}
	}

	// Print each label-value pair with consistent padding
	for i, label := range labels {
		fmt.Printf("  %-*s %v\n", maxLabelLen+1, label, values[i])
	}
	fmt.Println()

	fmt.Printf("Checked %d records in %v\n\n", result.TotalRecords, duration)
}

// printCheckSuccess prints the success case output.
func printCheckSuccess(cfg *contract.Config, result *schema.CheckResult) {
	if cfg.UseEmojis {
		fmt.Printf("✅ All %d records sit at or above their reorder points\n", result.TotalRecords)
	} else {
		fmt.Printf("PASS: all %d records sit at or above their reorder points\n", result.TotalRecords)
	}
}

// printCheckFailure prints every alert, worst shortfall first.
func printCheckFailure(cfg *contract.Config, result *schema.CheckResult) {
	if cfg.UseEmojis {
		fmt.Printf("❌ Reorder check failed: %d alert(s) across %d records\n\n", len(result.Alerts), result.TotalRecords)
	} else {
		fmt.Printf("FAIL: reorder check failed: %d alert(s) across %d records\n\n", len(result.Alerts), result.TotalRecords)
	}

	for _, alert := range result.Alerts {
		severity := alert.Severity
		if cfg.UseColors {
			severity = contract.GetColorLabel(severity)
		}
		fmt.Printf("  - %s @ %s (left: %d, reorder at: %d) [%s]\n",
			alert.Item, alert.Location, alert.UnitsLeft, alert.ReorderPoint, severity)
	}
	fmt.Println()
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmallard/shelfwatch/core"
	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler carries the validated base config and store manager into the
// tool callbacks. Each call clones the config before applying overrides.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// applyRegion validates and applies an optional region override.
func applyRegion(cfg *contract.Config, raw string) error {
	if raw == "" {
		return nil
	}
	region := schema.RegionScope(strings.ToLower(raw))
	if _, ok := schema.ValidRegionScopes[region]; !ok {
		return fmt.Errorf("invalid region '%s'. must be all, ca, us", raw)
	}
	cfg.Region = region
	return nil
}

func (h *toolHandler) handleForecastDemand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if f := request.GetString("sales_file", ""); f != "" {
		cfg.SalesFile = f
	}
	if d := request.GetInt("horizon_days", 0); d > 0 {
		cfg.HorizonDays = d
	}
	if err := applyRegion(cfg, request.GetString("region", "")); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	table, _, err := core.GetForecastResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("forecast failed: %v", err)), nil
	}

	enriched := schema.EnrichForecasts(table.Results)
	jsonData, _ := json.MarshalIndent(enriched, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleInventoryOverview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if f := request.GetString("inventory_file", ""); f != "" {
		cfg.InventoryFile = f
	}
	if err := applyRegion(cfg, request.GetString("region", "")); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if c := request.GetString("category", ""); c != "" {
		cfg.Categories = []string{c}
	}
	if s := request.GetString("supplier", ""); s != "" {
		cfg.Suppliers = []string{s}
	}

	report, _, err := core.GetInventoryReport(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("overview failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleReorderAlerts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if f := request.GetString("inventory_file", ""); f != "" {
		cfg.InventoryFile = f
	}
	if err := applyRegion(cfg, request.GetString("region", "")); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, _, err := core.GetReorderAlerts(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reorder check failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleSearchInterest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword := strings.TrimSpace(request.GetString("keyword", ""))
	if keyword == "" {
		return mcp.NewToolResultError("keyword is required"), nil
	}

	cfg := h.baseCfg.Clone()
	if g := request.GetString("geo", ""); g != "" {
		cfg.TrendsGeo = g
	}
	if tf := request.GetString("timeframe", ""); tf != "" {
		if _, err := contract.ParseLookbackDuration(tf); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid timeframe: %v", err)), nil
		}
		cfg.TrendsTimeframe = tf
	}

	series, _, err := core.GetTrendSeries(core.WithSuppressHeader(ctx), cfg, h.mgr, keyword)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("interest lookup failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(series, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Shelfwatch MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Shelfwatch BI Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: forecast_demand ---
	s.AddTool(mcp.NewTool("forecast_demand",
		mcp.WithDescription("Project per-item, per-location demand from the sales ledger using a fitted daily trend."),
		mcp.WithString("sales_file", mcp.Description("Path to the sales ledger CSV (defaults to the configured ledger).")),
		mcp.WithNumber("horizon_days", mcp.Description("Projection window in days. 30, 60 and 90 are the common presets; defaults to the configured horizon.")),
		mcp.WithString("region", mcp.Description("Region scope (all, ca, us). Defaults to 'all'."), mcp.Enum("all", "ca", "us")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of rows returned.")),
	), h.handleForecastDemand)

	// --- 2. Tool: inventory_overview ---
	s.AddTool(mcp.NewTool("inventory_overview",
		mcp.WithDescription("Report the KPI-enriched inventory snapshot: margins, stock value, turnover and aggregates."),
		mcp.WithString("inventory_file", mcp.Description("Path to the inventory snapshot CSV (defaults to the configured snapshot).")),
		mcp.WithString("region", mcp.Description("Region scope (all, ca, us)."), mcp.Enum("all", "ca", "us")),
		mcp.WithString("category", mcp.Description("Restrict to one category.")),
		mcp.WithString("supplier", mcp.Description("Restrict to one supplier.")),
	), h.handleInventoryOverview)

	// --- 3. Tool: reorder_alerts ---
	s.AddTool(mcp.NewTool("reorder_alerts",
		mcp.WithDescription("List every item sitting below its reorder point, worst shortfall first, with severity labels."),
		mcp.WithString("inventory_file", mcp.Description("Path to the inventory snapshot CSV.")),
		mcp.WithString("region", mcp.Description("Region scope (all, ca, us)."), mcp.Enum("all", "ca", "us")),
	), h.handleReorderAlerts)

	// --- 4. Tool: search_interest ---
	s.AddTool(mcp.NewTool("search_interest",
		mcp.WithDescription("Look up relative search interest (0-100) for a keyword over a timeframe. Results are cached for a day."),
		mcp.WithString("keyword", mcp.Description("The keyword to look up."), mcp.Required()),
		mcp.WithString("geo", mcp.Description("Geo filter (e.g. 'CA', 'US'). Empty means worldwide.")),
		mcp.WithString("timeframe", mcp.Description("Lookback window (e.g. '90 days', '6 months').")),
	), h.handleSearchInterest)

	return s
}

// StartMCPServer starts the Shelfwatch MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}

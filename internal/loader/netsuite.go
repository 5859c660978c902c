package loader

import (
	"context"
	"errors"

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/schema"
)

// ErrNetSuiteNotConfigured is returned by every NetSuite load. The
// connector accepts credentials so the config plumbing can be exercised,
// but it never makes a live ERP call; callers fall back to local data.
var ErrNetSuiteNotConfigured = errors.New("netsuite integration is not active")

// NetSuiteSource is the inert ERP connector placeholder.
type NetSuiteSource struct {
	account string
	token   string
}

var _ contract.InventorySource = &NetSuiteSource{} // Compile-time check

// NewNetSuiteSource creates the placeholder source for the given credentials.
func NewNetSuiteSource(account, token string) *NetSuiteSource {
	return &NetSuiteSource{account: account, token: token}
}

// Describe implements the InventorySource interface.
func (s *NetSuiteSource) Describe() string {
	return "netsuite:" + s.account
}

// LoadInventory implements the InventorySource interface. It never returns
// data; the integration stays inert until a real connector ships.
func (s *NetSuiteSource) LoadInventory(_ context.Context) ([]schema.InventoryRecord, error) {
	return nil, ErrNetSuiteNotConfigured
}

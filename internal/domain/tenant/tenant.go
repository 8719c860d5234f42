// Package tenant holds tenant identity and the onboarding configuration a
// store owner fills in when the tenant is first provisioned.
package tenant

import (
	"regexp"
	"strings"

	"github.com/erp/backoffice/internal/domain/shared"
)

// DefaultID is used whenever no tenant can be resolved
const DefaultID = "default"

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,62}$`)

// Resolve normalizes a tenant id, falling back to DefaultID when empty
func Resolve(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return DefaultID
	}
	return id
}

// Validate checks that id is a usable tenant slug
func Validate(id string) error {
	if !idPattern.MatchString(id) {
		return shared.InvalidInput("invalid tenant id %q", id)
	}
	return nil
}

// StorageKey returns the key a collection is stored under for a tenant
func StorageKey(collection, tenantID string) string {
	return collection + "_" + Resolve(tenantID)
}

// OnboardingConfig is the store setup captured during onboarding.
// Subdomain doubles as the tenant id when the request carries no other hint.
type OnboardingConfig struct {
	StoreName string `json:"storeName"`
	Subdomain string `json:"subdomain" validate:"omitempty,max=63"`
	Currency  string `json:"currency" validate:"omitempty,len=3"`
	Industry  string `json:"industry,omitempty"`
	Country   string `json:"country,omitempty"`
	Completed bool   `json:"completed"`
}

// TenantID returns the tenant id implied by the configuration
func (c OnboardingConfig) TenantID() string {
	return Resolve(c.Subdomain)
}

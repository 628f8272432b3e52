package domain

import (
	"fmt"
	"strings"
)

// fieldUnset values mean a profile field carries no real information.
// Imported listings frequently use placeholder strings instead of blanks.
var fieldUnset = map[string]bool{
	"":                     true,
	"No info":              true,
	"Pending verification": true,
}

// AutomationLevel controls how automated actions are executed for a tenant.
type AutomationLevel string

// Available automation levels.
const (
	// AutomationManual creates a notification and waits for the owner.
	AutomationManual AutomationLevel = "manual"

	// AutomationApproval queues the action for explicit approval.
	AutomationApproval AutomationLevel = "approval"

	// AutomationAuto executes the action immediately.
	AutomationAuto AutomationLevel = "auto"
)

// IsValid returns true if the automation level is recognised.
func (l AutomationLevel) IsValid() bool {
	switch l {
	case AutomationManual, AutomationApproval, AutomationAuto:
		return true
	default:
		return false
	}
}

// AutomationSettings holds per-surface automation levels.
type AutomationSettings struct {
	Posts   AutomationLevel
	Reviews AutomationLevel
	QA      AutomationLevel
}

// TenantProfile is a read-only snapshot of the business profile that
// owns a knowledge base. The web layer supplies it; the core only
// formats it into prompt context and the profile embedding text.
type TenantProfile struct {
	// TenantID is the business identifier.
	TenantID string

	// Name is the business display name.
	Name string

	// Category is the listing category.
	Category string

	// Address is the street address.
	Address string

	// Website is the business website URL.
	Website string

	// Phone is the contact phone number.
	Phone string

	// Description is the free-text business description.
	Description string

	// Verified indicates the listing passed ownership verification.
	Verified bool

	// Automation holds the tenant's automation preferences.
	Automation AutomationSettings

	// DocumentNames lists the source documents in the knowledge base.
	DocumentNames []string
}

// CompletionPercent scores profile completeness. Each of the five
// required fields is worth 20 points; placeholder values score zero.
// Unverified profiles always score zero.
func (p *TenantProfile) CompletionPercent() int {
	if !p.Verified {
		return 0
	}

	score := 0
	for _, field := range []string{p.Name, p.Address, p.Phone, p.Website, p.Category} {
		if !fieldUnset[strings.TrimSpace(field)] {
			score += 20
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}

// ProfileText renders the profile fields into a single text block,
// used both for the profile embedding and as prompt context.
// Unset placeholder fields are omitted.
func (p *TenantProfile) ProfileText() string {
	parts := make([]string, 0, 6)

	appendSet := func(label, value string) {
		if !fieldUnset[strings.TrimSpace(value)] {
			if label == "" {
				parts = append(parts, value)
			} else {
				parts = append(parts, fmt.Sprintf("%s: %s", label, value))
			}
		}
	}

	appendSet("", p.Name)
	appendSet("", p.Description)
	appendSet("Category", p.Category)
	appendSet("Address", p.Address)
	appendSet("Website", p.Website)
	appendSet("Phone", p.Phone)

	return strings.Join(parts, "\n")
}

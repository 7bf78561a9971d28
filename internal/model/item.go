package model

import (
	"time"

	"github.com/google/uuid"
)

// ReportType distinguishes a lost report from a found report.
type ReportType string

// Valid report types.
const (
	ReportLost  ReportType = "lost"
	ReportFound ReportType = "found"
)

// Opposite returns the report type a matching item must carry.
func (t ReportType) Opposite() ReportType {
	if t == ReportLost {
		return ReportFound
	}
	return ReportLost
}

// IsValid reports whether t is a known report type.
func (t ReportType) IsValid() bool {
	return t == ReportLost || t == ReportFound
}

// ItemStatus tracks an item's lifecycle.
type ItemStatus string

// Valid item statuses.
const (
	StatusOpen     ItemStatus = "open"
	StatusResolved ItemStatus = "resolved"
)

// Item categories recognized by the intake form.
const (
	CategoryElectronic = "electronic"
	CategoryID         = "id"
	CategoryKeys       = "keys"
	CategoryOthers     = "others"
)

// Categories lists the recognized category tags.
var Categories = []string{CategoryElectronic, CategoryID, CategoryKeys, CategoryOthers}

// Item is a single lost or found report.
//
// Type and Campus are the hard-filter partition keys used by the matcher
// and are immutable after creation; edits may only touch description,
// location, contact and category.
type Item struct {
	CreatedAt   time.Time
	ResolvedAt  *time.Time
	ID          string
	Type        ReportType
	Campus      string
	Category    string
	Description string
	Location    string
	Contact     string
	Summary     string // one-sentence summary produced at intake
	Resolution  string // note recorded when the item is resolved
	Tags        []string
	Status      ItemStatus
}

// NewItemID returns a fresh identifier for an item.
func NewItemID() string {
	return uuid.NewString()
}

// IsOpen reports whether the item is still in the active candidate pool.
func (i *Item) IsOpen() bool {
	return i.Status == StatusOpen
}

// IsContactEmail reports whether the contact identifier is email-shaped.
// Phone-shaped contacts are resolved to an email via the user profile.
func (i *Item) IsContactEmail() bool {
	for _, r := range i.Contact {
		if r == '@' {
			return true
		}
	}
	return false
}

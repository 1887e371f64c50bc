package entities

import (
	"github.com/shopspring/decimal"
)

// LockedInSource identifies where a locked-in choice was contracted.
type LockedInSource int

const (
	LockedInJob LockedInSource = iota + 1
	LockedInChangeOrder
)

// String method for LockedInSource enum
func (s LockedInSource) String() string {
	switch s {
	case LockedInJob:
		return "Job"
	case LockedInChangeOrder:
		return "ChangeOrder"
	default:
		return "Unknown"
	}
}

// LockedInChoice carries the original selection of a choice that was already
// purchased. A locked-in choice may remain selected even when current rules
// would disable it.
type LockedInChoice struct {
	Source             LockedInSource
	ChoiceID           int
	DivChoiceCatalogID int
	Quantity           int
	Price              decimal.Decimal
	AttributeGroups    []int
	LocationGroups     []int
	SelectedAttributes []SelectedAttribute
}

// LockedInOptionChoice is one choice of a frozen option mapping, referenced
// by division catalog id.
type LockedInOptionChoice struct {
	ID                     int
	MustHave               bool
	AttributeReassignments []AttributeReassignment
}

// LockedInOption freezes the option-to-choice mapping in force when the
// choice was contracted.
type LockedInOption struct {
	OptionID  string // financial option integration key
	ListPrice decimal.Decimal
	Choices   []LockedInOptionChoice
}

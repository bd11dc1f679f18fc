package valueobject

import "fmt"

// Category is one of the eight groupings a fraud check belongs to.
type Category struct {
	value string
}

var (
	CategoryAuditor      = Category{value: "AUDITOR"}
	CategoryCashFlow     = Category{value: "CASH_FLOW"}
	CategoryRelatedParty = Category{value: "RELATED_PARTY"}
	CategoryPromoter     = Category{value: "PROMOTER"}
	CategoryGovernance   = Category{value: "GOVERNANCE"}
	CategoryBalanceSheet = Category{value: "BALANCE_SHEET"}
	CategoryRevenue      = Category{value: "REVENUE"}
	CategoryTextual      = Category{value: "TEXTUAL"}
)

// AllCategories returns every category in its canonical reporting order.
func AllCategories() []Category {
	return []Category{
		CategoryAuditor,
		CategoryCashFlow,
		CategoryRelatedParty,
		CategoryPromoter,
		CategoryGovernance,
		CategoryBalanceSheet,
		CategoryRevenue,
		CategoryTextual,
	}
}

// CategoryFromString reconstructs a Category from its string representation.
func CategoryFromString(s string) (Category, error) {
	for _, c := range AllCategories() {
		if c.value == s {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("invalid category: %s", s)
}

// String returns the string representation.
func (c Category) String() string {
	return c.value
}

// IsZero returns true if the Category has not been set.
func (c Category) IsZero() bool {
	return c.value == ""
}

// Equal checks equality with another Category.
func (c Category) Equal(other Category) bool {
	return c.value == other.value
}

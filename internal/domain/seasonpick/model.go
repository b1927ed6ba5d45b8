package seasonpick

import "time"

// Category identifies one season-long award a user predicts.
type Category string

const (
	CategoryWDCWinner           Category = "wdc_winner"
	CategoryWCCWinner           Category = "wcc_winner"
	CategoryMostWins            Category = "most_wins"
	CategoryMostPoles           Category = "most_poles"
	CategoryMostPodiums         Category = "most_podiums"
	CategoryFirstDNFDriver      Category = "first_dnf_driver"
	CategoryFirstDNFConstructor Category = "first_dnf_constructor"
)

// Categories lists every season pick category in display order.
func Categories() []Category {
	return []Category{
		CategoryWDCWinner,
		CategoryWCCWinner,
		CategoryMostWins,
		CategoryMostPoles,
		CategoryMostPodiums,
		CategoryFirstDNFDriver,
		CategoryFirstDNFConstructor,
	}
}

// ConstructorCategories are the categories whose value is a constructor id
// rather than a driver id.
func (c Category) IsConstructor() bool {
	return c == CategoryWCCWinner || c == CategoryFirstDNFConstructor
}

func (c Category) Valid() bool {
	switch c {
	case CategoryWDCWinner, CategoryWCCWinner, CategoryMostWins, CategoryMostPoles,
		CategoryMostPodiums, CategoryFirstDNFDriver, CategoryFirstDNFConstructor:
		return true
	default:
		return false
	}
}

// Picks holds one user's season-long predictions. Unset categories are nil.
type Picks struct {
	UserID              string
	WDCWinner           *string
	WCCWinner           *string
	MostWins            *string
	MostPoles           *string
	MostPodiums         *string
	FirstDNFDriver      *string
	FirstDNFConstructor *string
	UpdatedAt           time.Time
}

// MidseasonCategory identifies one of the mid-year revision picks.
type MidseasonCategory string

const (
	MidseasonCategoryWDCWinner MidseasonCategory = "wdc_winner"
	MidseasonCategoryWCCWinner MidseasonCategory = "wcc_winner"
)

func (c MidseasonCategory) Valid() bool {
	return c == MidseasonCategoryWDCWinner || c == MidseasonCategoryWCCWinner
}

// MidseasonPicks holds the mid-year WDC/WCC revision.
type MidseasonPicks struct {
	UserID    string
	WDCWinner *string
	WCCWinner *string
	UpdatedAt time.Time
}

// Update is the projection the activity feed reads: who touched their season
// picks and when.
type Update struct {
	UserID    string
	UpdatedAt time.Time
}

package domain

// ComparisonRow is one labeled line of a side-by-side comparison.
// At most one of WinnerA and WinnerB is set.
type ComparisonRow struct {
	Label   string `json:"label"`
	ValueA  string `json:"valueA"`
	ValueB  string `json:"valueB"`
	WinnerA bool   `json:"winnerA"`
	WinnerB bool   `json:"winnerB"`
}

// ComparisonSection groups comparison rows under a titled heading.
type ComparisonSection struct {
	Title string          `json:"title"`
	Icon  string          `json:"icon"`
	Rows  []ComparisonRow `json:"rows"`
}

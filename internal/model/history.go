package model

// HistoryEntry is one row of the retrospective resolution history: either
// a reconstructed lost/found pair or an unpaired resolved item.
type HistoryEntry struct {
	Lost  *Item
	Found *Item
	Item  *Item // set for singletons
	Score float64
}

// IsPair reports whether the entry pairs a lost item with a found item.
func (e HistoryEntry) IsPair() bool {
	return e.Lost != nil && e.Found != nil
}

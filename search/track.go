package search

// Track is one catalog search result. ID is the provider's composite
// identifier ("ownerID_audioID") and URL points at the playable source.
type Track struct {
	ID       string
	Artist   string
	Title    string
	URL      string
	Duration int
}

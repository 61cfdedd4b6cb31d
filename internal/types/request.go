package types

// Default result limits when a caller does not provide one.
const (
	DefaultJobLimit   = 10
	DefaultVideoLimit = 5
	MaxLimit          = 100
)

// SearchRequest is a normalized job search. It lives for one aggregation call.
type SearchRequest struct {
	Query      string
	Limit      int
	Location   string
	RemoteOnly bool
	JobType    string
}

// VideoRequest is a normalized tutorial video search.
type VideoRequest struct {
	Query string
	Limit int
	// Sorting is accepted for API compatibility and does not change ordering.
	Sorting string
}

package domain

// BackendPage is one raw page from the search backend: hit document ids in
// backend relevance order plus the opaque scroll token, empty when the
// backend opened no scroll context.
type BackendPage struct {
	HitIDs      []string
	ScrollToken string
}

// ShardFailure is a shard-level failure reported inside an otherwise accepted
// bulk delete response.
type ShardFailure struct {
	Index  string
	Shard  int
	Status int
	Reason string
}

// BulkDeletion is the outcome of a single delete-by-query call.
type BulkDeletion struct {
	Deleted       int64
	ShardFailures []ShardFailure
}

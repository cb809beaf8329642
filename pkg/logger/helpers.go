package logger

// LogSearchRequest records a resolved API call before it is issued, so
// a crashed run's log always shows the last attempted request.
func LogSearchRequest(query, since, until, cursor string) {
	GetLogger().InfoWithFields("search request", map[string]interface{}{
		"query":  query,
		"since":  since,
		"until":  until,
		"cursor": cursor,
		"action": "api_call",
	})
}

// LogWindowDone records the completion of one time window.
func LogWindowDone(since, until string, posts, pages int) {
	GetLogger().InfoWithFields("window completed", map[string]interface{}{
		"since": since,
		"until": until,
		"posts": posts,
		"pages": pages,
	})
}

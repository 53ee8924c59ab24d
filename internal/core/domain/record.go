package domain

// Record is one entity record as returned by the remote store.
// Field sets vary per endpoint and per requested includes, so records stay
// schemaless; callers pick out the handful of fields they need.
type Record map[string]any

// GetString returns a string field of the record, or "" if the field is
// absent or not a string.
func (r Record) GetString(key string) string {
	s, _ := r[key].(string)
	return s
}

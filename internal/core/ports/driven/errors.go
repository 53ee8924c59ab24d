package driven

import "fmt"

// APIError is the remote store's rejection of a call: any non-success HTTP
// status. It is part of the port contract so that services can pass it
// through to their callers without depending on an adapter package. Services
// never branch on the status code; the one exception is spelled out at the
// folder-contents probe, which reinterprets a rejected probe as the folder
// not being found.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("admin API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

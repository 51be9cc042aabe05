package scraper

import "fmt"

// FetchError indicates the source document could not be retrieved. Fatal to
// a run unless the cache can serve the document instead.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError indicates the document does not match the expected top-level
// structure. Fatal to the run.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s document: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps a store failure for one event. Reported per event;
// never aborts the run.
type PersistenceError struct {
	Source string
	RideID string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist event %s/%s: %v", e.Source, e.RideID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

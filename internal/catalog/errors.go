package catalog

import "fmt"

// FetchError is returned when catalog listing page can't be fetched or decoded.
type FetchError struct {
	Page int
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("can't fetch catalog page %d: %s", e.Page, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

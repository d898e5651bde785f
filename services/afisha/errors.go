package afisha

// FetchError represents a transport-level failure while fetching a page
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return "fetch " + e.URL + ": " + e.Err.Error()
	}
	return "fetch " + e.URL + " failed"
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError represents an unexpected or malformed page structure
type ParseError struct {
	What string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return "parse " + e.What + ": " + e.Err.Error()
	}
	return "parse " + e.What + " failed"
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

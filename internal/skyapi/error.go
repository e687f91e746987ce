package skyapi

// APIError tags an upstream failure with the endpoint it came from.
type APIError struct {
	Endpoint string
	Err      error
}

func (e *APIError) Error() string {
	return e.Endpoint + ": " + e.Err.Error()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func NewAPIError(endpoint string, err error) *APIError {
	return &APIError{
		Endpoint: endpoint,
		Err:      err,
	}
}

package models

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

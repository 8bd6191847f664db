package handler

// errorBody documents the error envelope rendered by the API error handler.
type errorBody struct {
	Error         string   `json:"error"`
	RequiredRoles []string `json:"required_roles,omitempty"`
}

// listResponse wraps paginated listings that report a total.
type listResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
}

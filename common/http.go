package common

// HttpResponse is the JSON envelope returned by every API handler.
type HttpResponse[T any] struct {
	Error  *string `json:"error"`
	Result *T      `json:"result,omitempty"`
}

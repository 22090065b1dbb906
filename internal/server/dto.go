package server

// ErrorResponse is the JSON shape of every 4xx/5xx body.
type ErrorResponse struct {
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
	Error string `json:"error"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Stars   int    `json:"stars"`
	Bodies  int    `json:"bodies"`
}

// Package health provides shared types for health check responses.
package health

// Response represents the API health response structure.
type Response struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Data      struct {
		Service      string `json:"service"`
		Uptime       string `json:"uptime"`
		Bindings     int    `json:"bindings"`
		Applications int    `json:"applications"`
	} `json:"data"`
	Error string `json:"error,omitempty"`
}

// IsHealthy reports whether the response indicates a healthy server.
func (r *Response) IsHealthy() bool {
	return r.Status == "healthy"
}

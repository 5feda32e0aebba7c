package apiclient

import (
	"encoding/json"
	"net/url"
	"time"
)

// DeployResult is the response body of deploy and undeploy operations.
type DeployResult struct {
	Application string `json:"application"`
	Affected    int    `json:"affected"`
	Deployed    int    `json:"deployed"`
}

// Binding is one naming-service binding.
type Binding struct {
	Name        string          `json:"name"`
	Application string          `json:"application,omitempty"`
	PublishedAt time.Time       `json:"published_at"`
	Resource    json.RawMessage `json:"resource"`
}

// DeploySessions registers every eligible mail session of the application
// with the naming service.
func (c *Client) DeploySessions(app string) (*DeployResult, error) {
	var resp DeployResult
	if err := c.post("/api/v1/applications/"+url.PathEscape(app)+"/sessions/deploy", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UndeploySessions unregisters every previously registered mail session of
// the application.
func (c *Client) UndeploySessions(app string) (*DeployResult, error) {
	var resp DeployResult
	if err := c.post("/api/v1/applications/"+url.PathEscape(app)+"/sessions/undeploy", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListBindings lists every binding currently published in the naming service.
func (c *Client) ListBindings() ([]Binding, error) {
	var resp []Binding
	if err := c.get("/api/v1/bindings", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

package apiclient

import (
	"net/url"

	"github.com/marmos91/resourced/pkg/descriptor"
)

// ApplicationSummary is the list/creation representation of an application.
type ApplicationSummary struct {
	Name         string `json:"name"`
	Bundles      int    `json:"bundles"`
	MailSessions int    `json:"mail_sessions"`
}

// CreateApplication registers a described application, replacing any previous
// registration under the same name.
func (c *Client) CreateApplication(app *descriptor.Application) (*ApplicationSummary, error) {
	var resp ApplicationSummary
	if err := c.post("/api/v1/applications", app, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListApplications lists all registered applications.
func (c *Client) ListApplications() ([]ApplicationSummary, error) {
	var resp []ApplicationSummary
	if err := c.get("/api/v1/applications", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetApplication returns the full descriptor of a registered application.
func (c *Client) GetApplication(name string) (*descriptor.Application, error) {
	var resp descriptor.Application
	if err := c.get("/api/v1/applications/"+url.PathEscape(name), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteApplication removes a registered application. Mail sessions the
// server registered for it are unregistered first.
func (c *Client) DeleteApplication(name string) error {
	return c.delete("/api/v1/applications/"+url.PathEscape(name), nil)
}

package apiclient

import (
	"fmt"
	"net/url"
)

// adminObjectPath builds the base path for admin-object lookups on one bundle.
func adminObjectPath(app, bundle, op string) string {
	return fmt.Sprintf("/api/v1/applications/%s/bundles/%s/admin-objects/%s",
		url.PathEscape(app), url.PathEscape(bundle), op)
}

// AdminObjectInterfaces returns the interface names of every admin object in
// the bundle, in document order, duplicates included.
func (c *Client) AdminObjectInterfaces(app, bundle string) ([]string, error) {
	var resp struct {
		Interfaces []string `json:"interfaces"`
	}
	if err := c.get(adminObjectPath(app, bundle, "interfaces"), &resp); err != nil {
		return nil, err
	}
	return resp.Interfaces, nil
}

// AdminObjectClasses returns the deduplicated implementation class names
// declared for an interface.
func (c *Client) AdminObjectClasses(app, bundle, interfaceName string) ([]string, error) {
	q := url.Values{"interface": {interfaceName}}
	var resp struct {
		Classes []string `json:"classes"`
	}
	if err := c.get(adminObjectPath(app, bundle, "classes")+"?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Classes, nil
}

// AdminObjectExists reports whether the bundle declares the exact
// interface/class pair.
func (c *Client) AdminObjectExists(app, bundle, interfaceName, className string) (bool, error) {
	q := url.Values{"interface": {interfaceName}, "class": {className}}
	var resp struct {
		Exists bool `json:"exists"`
	}
	if err := c.get(adminObjectPath(app, bundle, "exists")+"?"+q.Encode(), &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}

// AdminObjectProperties returns the effective properties of the matching
// admin object. The map is nil when the admin object declares no
// implementation class.
func (c *Client) AdminObjectProperties(app, bundle, interfaceName, className string) (map[string]string, error) {
	q := url.Values{"interface": {interfaceName}}
	if className != "" {
		q.Set("class", className)
	}
	var resp struct {
		Properties map[string]string `json:"properties"`
	}
	if err := c.get(adminObjectPath(app, bundle, "properties")+"?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Properties, nil
}

// AdminObjectConfidential returns the names of the confidential properties of
// the matching admin object.
func (c *Client) AdminObjectConfidential(app, bundle, interfaceName, className string) ([]string, error) {
	q := url.Values{"interface": {interfaceName}}
	if className != "" {
		q.Set("class", className)
	}
	var resp struct {
		Confidential []string `json:"confidential"`
	}
	if err := c.get(adminObjectPath(app, bundle, "confidential")+"?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Confidential, nil
}

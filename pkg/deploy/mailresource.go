package deploy

import (
	"github.com/marmos91/resourced/pkg/descriptor"
)

// MailResourceProperty is one name/value pair of a published mail resource.
type MailResourceProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MailResource is the configuration-bean shape a mail-session definition is
// adapted into before publication: the same information a <mail-resource>
// server configuration entry would carry, sourced from the definition.
//
// Debug and Enabled are fixed to "true" for definition-derived resources;
// the protocol implementation classes are resolved through the
// "mail.<protocol>.class" convention property.
type MailResource struct {
	JndiName               string                 `json:"jndi_name"`
	Description            string                 `json:"description,omitempty"`
	StoreProtocol          string                 `json:"store_protocol,omitempty"`
	StoreProtocolClass     string                 `json:"store_protocol_class,omitempty"`
	TransportProtocol      string                 `json:"transport_protocol,omitempty"`
	TransportProtocolClass string                 `json:"transport_protocol_class,omitempty"`
	Host                   string                 `json:"host,omitempty"`
	User                   string                 `json:"user,omitempty"`
	From                   string                 `json:"from,omitempty"`
	Debug                  string                 `json:"debug"`
	Enabled                string                 `json:"enabled"`
	Properties             []MailResourceProperty `json:"properties,omitempty"`
}

// NewMailResource adapts a mail-session definition into the mail-resource
// shape published into the naming service.
func NewMailResource(msd *descriptor.MailSessionDefinition) MailResource {
	props := make([]MailResourceProperty, 0, len(msd.Properties))
	for _, p := range msd.Properties {
		props = append(props, MailResourceProperty{Name: p.Name, Value: p.Value})
	}

	return MailResource{
		JndiName:               msd.Name,
		Description:            msd.Description,
		StoreProtocol:          msd.StoreProtocol,
		StoreProtocolClass:     msd.Property("mail." + msd.StoreProtocol + ".class"),
		TransportProtocol:      msd.TransportProtocol,
		TransportProtocolClass: msd.Property("mail." + msd.TransportProtocol + ".class"),
		Host:                   msd.Host,
		User:                   msd.User,
		From:                   msd.From,
		Debug:                  "true",
		Enabled:                "true",
		Properties:             props,
	}
}

// PropertyValue returns the value of a resource property, or fallback when
// the property is absent.
func (r MailResource) PropertyValue(name, fallback string) string {
	for _, p := range r.Properties {
		if p.Name == name {
			return p.Value
		}
	}
	return fallback
}

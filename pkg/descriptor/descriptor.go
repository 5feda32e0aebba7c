// Package descriptor defines the resource definition model: admin objects
// and mail sessions grouped into bundles, bundles grouped into described
// applications.
//
// The model mirrors what deployment descriptors declare, after parsing has
// already happened elsewhere: every definition carries its declared
// configuration properties, and mail-session definitions additionally carry
// the protocol and connection attributes used when the definition is
// adapted into a naming-service binding.
package descriptor

import (
	"github.com/marmos91/resourced/pkg/property"
)

// MailSessionInterface is the capability interface implemented by every
// mail-session definition.
const MailSessionInterface = "jakarta.mail.Session"

// ConfigProperty is a single declared configuration property.
//
// Confidential properties (passwords, tokens) are flagged so callers can
// filter them out of logs and API responses.
type ConfigProperty struct {
	Name         string `json:"name"         mapstructure:"name"         validate:"required" yaml:"name"`
	Value        string `json:"value"        mapstructure:"value"        yaml:"value"`
	Confidential bool   `json:"confidential" mapstructure:"confidential" yaml:"confidential"`
}

// Definition is the capability shared by every resource definition kind:
// an identifying interface name, an optional implementation class name, and
// the declared configuration properties.
//
// Each definition kind is its own concrete type; there is deliberately no
// common "resource" supertype to downcast from.
type Definition interface {
	// DefinitionInterface returns the capability interface the definition
	// implements, e.g. "jakarta.jms.Queue" or "jakarta.mail.Session".
	DefinitionInterface() string

	// DefinitionClass returns the implementation class name. May be empty
	// for definitions without an implementation class.
	DefinitionClass() string

	// ConfigProperties returns the declared properties in document order.
	ConfigProperties() []ConfigProperty
}

// AdminObject is one administered-object definition within a bundle.
type AdminObject struct {
	// InterfaceName identifies the capability the admin object implements.
	// Unique within a bundle only together with ClassName.
	InterfaceName string `json:"interface" mapstructure:"interface" validate:"required" yaml:"interface"`

	// ClassName is the implementation class. May be empty when the admin
	// object declares no implementation; property merging is skipped for
	// such definitions.
	ClassName string `json:"class,omitempty" mapstructure:"class" yaml:"class,omitempty"`

	// Properties are the declared configuration properties.
	Properties []ConfigProperty `json:"properties,omitempty" mapstructure:"properties" validate:"dive" yaml:"properties,omitempty"`
}

// DefinitionInterface implements Definition.
func (a AdminObject) DefinitionInterface() string { return a.InterfaceName }

// DefinitionClass implements Definition.
func (a AdminObject) DefinitionClass() string { return a.ClassName }

// ConfigProperties implements Definition.
func (a AdminObject) ConfigProperties() []ConfigProperty { return a.Properties }

// DeclaredProperties returns the declared properties as an ordered bag.
func (a AdminObject) DeclaredProperties() *property.Bag {
	return propertiesToBag(a.Properties)
}

// MailSessionDefinition is one mail-session definition, the Go shape of a
// @MailSessionDefinition annotation or its descriptor equivalent.
type MailSessionDefinition struct {
	// Name is the JNDI-style name of the session, including its scope
	// prefix, e.g. "java:app/mail/orders".
	Name string `json:"name" mapstructure:"name" validate:"required" yaml:"name"`

	Description string `json:"description,omitempty" mapstructure:"description" yaml:"description,omitempty"`

	// StoreProtocol and TransportProtocol select the mail protocols; the
	// implementation class of each is resolved through the
	// "mail.<protocol>.class" property.
	StoreProtocol     string `json:"store_protocol,omitempty"     mapstructure:"store_protocol"     yaml:"store_protocol,omitempty"`
	TransportProtocol string `json:"transport_protocol,omitempty" mapstructure:"transport_protocol" yaml:"transport_protocol,omitempty"`

	Host string `json:"host,omitempty" mapstructure:"host" yaml:"host,omitempty"`
	User string `json:"user,omitempty" mapstructure:"user" yaml:"user,omitempty"`
	From string `json:"from,omitempty" mapstructure:"from" yaml:"from,omitempty"`

	Properties []ConfigProperty `json:"properties,omitempty" mapstructure:"properties" validate:"dive" yaml:"properties,omitempty"`

	// ResourceID is the owning scope of the definition. It is stamped by
	// the deployer for application-scoped names and is never read from a
	// descriptor document.
	ResourceID string `json:"-" mapstructure:"-" yaml:"-"`
}

// DefinitionInterface implements Definition. Mail sessions always expose the
// jakarta.mail.Session interface.
func (m *MailSessionDefinition) DefinitionInterface() string { return MailSessionInterface }

// DefinitionClass implements Definition. Mail sessions carry no
// implementation class of their own.
func (m *MailSessionDefinition) DefinitionClass() string { return "" }

// ConfigProperties implements Definition.
func (m *MailSessionDefinition) ConfigProperties() []ConfigProperty { return m.Properties }

// Property returns the value of a declared property, or "" when absent.
func (m *MailSessionDefinition) Property(name string) string {
	for _, p := range m.Properties {
		if p.Name == name {
			return p.Value
		}
	}
	return ""
}

// DeclaredProperties returns the declared properties as an ordered bag.
func (m *MailSessionDefinition) DeclaredProperties() *property.Bag {
	return propertiesToBag(m.Properties)
}

func propertiesToBag(props []ConfigProperty) *property.Bag {
	bag := property.NewBag()
	for _, p := range props {
		bag.Set(p.Name, p.Value)
	}
	return bag
}

package descriptor

// ComponentKind classifies the component descriptors that can declare
// mail-session definitions inside a bundle.
type ComponentKind string

const (
	ComponentEJB         ComponentKind = "ejb"
	ComponentInterceptor ComponentKind = "interceptor"
	ComponentManagedBean ComponentKind = "managed-bean"
)

// Component is an EJB, interceptor, or managed bean inside a bundle that
// declares its own mail-session definitions.
type Component struct {
	Name         string                   `json:"name" mapstructure:"name" validate:"required" yaml:"name"`
	Kind         ComponentKind            `json:"kind" mapstructure:"kind" validate:"required,oneof=ejb interceptor managed-bean" yaml:"kind"`
	MailSessions []*MailSessionDefinition `json:"mail_sessions,omitempty" mapstructure:"mail_sessions" validate:"dive" yaml:"mail_sessions,omitempty"`
}

// Bundle is one described unit: the definitions of a deployment-descriptor
// bundle plus the component descriptors and extension bundles nested in it.
//
// Definition slices are ordered (document order), which makes first-match
// lookups deterministic.
type Bundle struct {
	Name string `json:"name" mapstructure:"name" validate:"required" yaml:"name"`

	AdminObjects []AdminObject            `json:"admin_objects,omitempty" mapstructure:"admin_objects" validate:"dive" yaml:"admin_objects,omitempty"`
	MailSessions []*MailSessionDefinition `json:"mail_sessions,omitempty" mapstructure:"mail_sessions" validate:"dive" yaml:"mail_sessions,omitempty"`
	Components   []Component              `json:"components,omitempty"    mapstructure:"components"    validate:"dive" yaml:"components,omitempty"`
	Extensions   []*Bundle                `json:"extensions,omitempty"    mapstructure:"extensions"    validate:"dive" yaml:"extensions,omitempty"`
}

// AllMailSessions returns every mail-session definition reachable from the
// bundle: its own, those of its components, and those of nested extension
// bundles, in document order.
func (b *Bundle) AllMailSessions() []*MailSessionDefinition {
	var out []*MailSessionDefinition
	out = append(out, b.MailSessions...)
	for _, c := range b.Components {
		out = append(out, c.MailSessions...)
	}
	for _, ext := range b.Extensions {
		out = append(out, ext.AllMailSessions()...)
	}
	return out
}

// Application is a described application: a name plus its bundles.
type Application struct {
	Name    string    `json:"name" mapstructure:"name" validate:"required" yaml:"name"`
	Bundles []*Bundle `json:"bundles,omitempty" mapstructure:"bundles" validate:"dive" yaml:"bundles,omitempty"`
}

// Bundle returns the named bundle, or nil when absent.
func (a *Application) Bundle(name string) *Bundle {
	for _, b := range a.Bundles {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// AllMailSessions returns every mail-session definition declared anywhere in
// the application.
func (a *Application) AllMailSessions() []*MailSessionDefinition {
	var out []*MailSessionDefinition
	for _, b := range a.Bundles {
		out = append(out, b.AllMailSessions()...)
	}
	return out
}

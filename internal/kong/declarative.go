package kong

import "fmt"

// declarativeFormatVersion is the schema version stamped onto exports
// consumed by Kong's declarative (DB-less) configuration loader.
const declarativeFormatVersion = "3.0"

// Declarative is the flattened document accepted by Kong's bulk
// configuration mechanism. It is derived from a Configuration and is
// never the system of record.
type Declarative struct {
	FormatVersion      string                `json:"_format_version" yaml:"_format_version"`
	Services           []DeclarativeService  `json:"services" yaml:"services"`
	Routes             []DeclarativeRoute    `json:"routes" yaml:"routes"`
	Plugins            []Plugin              `json:"plugins" yaml:"plugins"`
	Consumers          []DeclarativeConsumer `json:"consumers" yaml:"consumers"`
	ConsumerGroups     []any                 `json:"consumer_groups" yaml:"consumer_groups"`
	KeyAuthCredentials []KeyAuthCredential   `json:"keyauth_credentials,omitempty" yaml:"keyauth_credentials,omitempty"`
}

// DeclarativeService is a service entry in the declarative document.
type DeclarativeService struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// DeclarativeRoute nests the owning service by name instead of carrying
// a flat foreign key.
type DeclarativeRoute struct {
	Name    string     `json:"name" yaml:"name"`
	Paths   []string   `json:"paths" yaml:"paths"`
	Service ServiceRef `json:"service" yaml:"service"`
}

// ServiceRef references a service by name.
type ServiceRef struct {
	Name string `json:"name" yaml:"name"`
}

// DeclarativeConsumer is a consumer entry; credential details live in
// the separate credential lists.
type DeclarativeConsumer struct {
	Username string `json:"username" yaml:"username"`
}

// ConsumerRef references a consumer by username.
type ConsumerRef struct {
	Username string `json:"username" yaml:"username"`
}

// KeyAuthCredential is a key-auth API key bound to a consumer.
type KeyAuthCredential struct {
	Consumer ConsumerRef `json:"consumer" yaml:"consumer"`
	Key      string      `json:"key" yaml:"key"`
}

// DemoKey returns the demonstration API key issued for a consumer.
func DemoKey(username string) string {
	return fmt.Sprintf("demo-key-%s", username)
}

// ToDeclarative converts the configuration into Kong's declarative
// format. It is a pure function of the receiver: key-auth consumers get
// a synthesized keyauth_credentials entry, everything else passes
// through.
func (c *Configuration) ToDeclarative() *Declarative {
	d := &Declarative{
		FormatVersion:  declarativeFormatVersion,
		Services:       []DeclarativeService{},
		Routes:         []DeclarativeRoute{},
		Plugins:        []Plugin{},
		Consumers:      []DeclarativeConsumer{},
		ConsumerGroups: []any{},
	}

	for _, s := range c.Services {
		d.Services = append(d.Services, DeclarativeService{Name: s.Name, URL: s.URL})
	}

	for _, r := range c.Routes {
		d.Routes = append(d.Routes, DeclarativeRoute{
			Name:    r.Name,
			Paths:   r.Paths,
			Service: ServiceRef{Name: r.ServiceName},
		})
	}

	d.Plugins = append(d.Plugins, c.Plugins...)

	for _, consumer := range c.Consumers {
		d.Consumers = append(d.Consumers, DeclarativeConsumer{Username: consumer.Username})

		if consumer.AuthType == "key-auth" {
			d.KeyAuthCredentials = append(d.KeyAuthCredentials, KeyAuthCredential{
				Consumer: ConsumerRef{Username: consumer.Username},
				Key:      DemoKey(consumer.Username),
			})
		}
	}

	return d
}

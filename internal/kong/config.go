package kong

import (
	"fmt"
	"math/rand"
	"strings"
)

// Configuration is the root aggregate of gateway objects. It is mutated
// by the Add* operations or replaced wholesale by Load; Validate repairs
// naming and referential violations in place rather than rejecting them.
type Configuration struct {
	Services  []Service  `json:"services" yaml:"services"`
	Routes    []Route    `json:"routes" yaml:"routes"`
	Plugins   []Plugin   `json:"plugins" yaml:"plugins"`
	Consumers []Consumer `json:"consumers" yaml:"consumers"`

	// TerminationNote is an advisory string produced by the
	// request-termination feature instead of a real plugin binding,
	// since the model has no per-route plugin scope.
	TerminationNote string `json:"termination_note,omitempty" yaml:"termination_note,omitempty"`
}

// New returns an empty configuration.
func New() *Configuration {
	return &Configuration{
		Services:  []Service{},
		Routes:    []Route{},
		Plugins:   []Plugin{},
		Consumers: []Consumer{},
	}
}

// normalizeName applies Kong's service naming convention: lowercase,
// underscores instead of hyphens.
func normalizeName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "-", "_"))
}

func defaultServiceName() string {
	return fmt.Sprintf("default_service_%d", 1000+rand.Intn(9000))
}

// AddService appends a service and returns its final name. An empty name
// is replaced with a synthesized default, hyphens become underscores, and
// a missing URL defaults to http://{name}:8080.
func (c *Configuration) AddService(name, url string) string {
	if name == "" {
		name = defaultServiceName()
	}
	name = normalizeName(name)

	if url == "" {
		url = fmt.Sprintf("http://%s:8080", name)
	}

	c.Services = append(c.Services, Service{Name: name, URL: url})
	return name
}

// AddRoute appends a route bound to serviceName and returns the route's
// final name. An empty service name falls back to the first existing
// service, or to a synthesized default that Validate will materialize.
// An empty route name becomes {service}-route-{n} where n counts routes
// already bound to that service, so generated names depend on insertion
// order.
func (c *Configuration) AddRoute(serviceName string, paths []string, name string) string {
	if serviceName == "" {
		if len(c.Services) > 0 {
			serviceName = c.Services[0].Name
		} else {
			serviceName = defaultServiceName()
		}
	}
	serviceName = normalizeName(serviceName)

	if name == "" {
		n := 0
		for _, r := range c.Routes {
			if r.ServiceName == serviceName {
				n++
			}
		}
		name = fmt.Sprintf("%s-route-%d", serviceName, n+1)
	}

	c.Routes = append(c.Routes, Route{ServiceName: serviceName, Paths: paths, Name: name})
	return name
}

// AddPlugin appends a plugin and returns it.
func (c *Configuration) AddPlugin(name string, config map[string]any) Plugin {
	p := Plugin{Name: name, Config: config}
	c.Plugins = append(c.Plugins, p)
	return p
}

// AddConsumer appends a consumer and returns it. Usernames are not
// deduplicated.
func (c *Configuration) AddConsumer(username, authType string) Consumer {
	consumer := Consumer{Username: username, AuthType: authType}
	c.Consumers = append(c.Consumers, consumer)
	return consumer
}

// AuthPlugin returns the first plugin that authenticates consumers, or
// nil. This is a derived query rather than state cached at AddPlugin
// time, so it cannot go stale if plugins are rearranged.
func (c *Configuration) AuthPlugin() *Plugin {
	for i := range c.Plugins {
		if IsAuthKind(c.Plugins[i].Name) {
			return &c.Plugins[i]
		}
	}
	return nil
}

// FindService returns the service with the given name, or nil.
func (c *Configuration) FindService(name string) *Service {
	for i := range c.Services {
		if c.Services[i].Name == name {
			return &c.Services[i]
		}
	}
	return nil
}

// Validate repairs the configuration in place and never fails: service
// names are normalized (synthesized when empty), missing URLs get their
// default, and every route is rebound to an existing service, creating a
// default service when none exists. Calling it twice is a no-op the
// second time. It must run after any bulk load from untrusted input.
func (c *Configuration) Validate() {
	for i := range c.Services {
		if c.Services[i].Name == "" {
			c.Services[i].Name = defaultServiceName()
		}
		c.Services[i].Name = normalizeName(c.Services[i].Name)
		if c.Services[i].URL == "" {
			c.Services[i].URL = fmt.Sprintf("http://%s:8080", c.Services[i].Name)
		}
	}

	for i := range c.Routes {
		if c.FindService(normalizeName(c.Routes[i].ServiceName)) == nil {
			if len(c.Services) > 0 {
				c.Routes[i].ServiceName = c.Services[0].Name
			} else {
				c.Routes[i].ServiceName = c.AddService(defaultServiceName(), "")
			}
		}
		c.Routes[i].ServiceName = normalizeName(c.Routes[i].ServiceName)
	}
}

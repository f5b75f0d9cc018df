// Package spec models the abstract API specification that drives both
// gateway configuration and mock backend scaffolding, and recovers such
// specifications from free-form AI output.
package spec

// Spec describes the services an API exposes.
type Spec struct {
	Services []ServiceSpec `json:"services" yaml:"services"`
}

// ServiceSpec describes one backend service.
type ServiceSpec struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string      `json:"url,omitempty" yaml:"url,omitempty"`
	Routes      []RouteSpec `json:"routes,omitempty" yaml:"routes,omitempty"`
}

// RouteSpec describes a URL path binding within a service.
type RouteSpec struct {
	Name      string         `json:"name,omitempty" yaml:"name,omitempty"`
	Path      string         `json:"path,omitempty" yaml:"path,omitempty"`
	Endpoints []EndpointSpec `json:"endpoints,omitempty" yaml:"endpoints,omitempty"`
}

// EndpointSpec describes a single operation. It is consumed only by
// mock backend generation, never by the gateway configuration transform.
type EndpointSpec struct {
	Path            string         `json:"path,omitempty" yaml:"path,omitempty"`
	Method          string         `json:"method,omitempty" yaml:"method,omitempty"`
	Description     string         `json:"description,omitempty" yaml:"description,omitempty"`
	RequestParams   map[string]any `json:"request_params,omitempty" yaml:"request_params,omitempty"`
	ResponseExample map[string]any `json:"response_example,omitempty" yaml:"response_example,omitempty"`
}

// FindService returns the spec for the named service. When the name is
// unknown it falls back to the first service, and to nil when the spec
// is empty.
func (s *Spec) FindService(name string) *ServiceSpec {
	if s == nil {
		return nil
	}
	for i := range s.Services {
		if s.Services[i].Name == name {
			return &s.Services[i]
		}
	}
	if len(s.Services) > 0 {
		return &s.Services[0]
	}
	return nil
}

package plugin

import (
	"encoding/json"

	"github.com/Cinex10/kong-demo/internal/kong"
	"github.com/Cinex10/kong-demo/internal/spec"
)

// SpecOptions control how a specification is applied to a configuration.
type SpecOptions struct {
	// BusinessType and BusinessParams are stamped onto each added
	// service's metadata for mock backend generation.
	BusinessType   string
	BusinessParams map[string]any
}

// ApplySpec materializes a specification's services and routes on the
// configuration, then applies the requested features. Duplicate service
// names within the specification are added once; a service with an
// empty name gets a synthesized one. It returns the final service names
// in the order they were added.
func ApplySpec(cfg *kong.Configuration, s *spec.Spec, features []string, opts Options, specOpts SpecOptions) []string {
	var added []string
	seen := map[string]bool{}

	if s != nil {
		for i := range s.Services {
			svcSpec := &s.Services[i]

			name := cfg.AddService(svcSpec.Name, svcSpec.URL)
			if seen[name] {
				// AddService already appended a duplicate entry; drop it.
				cfg.Services = cfg.Services[:len(cfg.Services)-1]
				continue
			}
			seen[name] = true
			added = append(added, name)

			if service := cfg.FindService(name); service != nil {
				service.Metadata = &kong.ServiceMetadata{
					BusinessType:   specOpts.BusinessType,
					BusinessParams: specOpts.BusinessParams,
					Specification:  specFragment(svcSpec),
				}
			}

			for _, routeSpec := range svcSpec.Routes {
				path := routeSpec.Path
				if path == "" {
					path = "/" + name
				}
				routeName := routeSpec.Name
				if routeName == "" {
					routeName = name + "-route"
				}
				cfg.AddRoute(name, []string{path}, routeName)
			}
		}
	}

	Apply(cfg, features, opts)
	return added
}

// specFragment converts a service spec into the loose map form carried
// in service metadata.
func specFragment(svcSpec *spec.ServiceSpec) map[string]any {
	data, err := json.Marshal(svcSpec)
	if err != nil {
		return nil
	}
	var fragment map[string]any
	if err := json.Unmarshal(data, &fragment); err != nil {
		return nil
	}
	return fragment
}

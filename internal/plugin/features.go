// Package plugin turns requested gateway feature tokens into plugin
// entries on a configuration, and applies API specifications to it.
// Feature dispatch is a table of construction functions keyed by token;
// new features are added by extending the table.
package plugin

import (
	"fmt"
	"strings"

	"github.com/Cinex10/kong-demo/internal/kong"
)

// DemoConsumer is the username issued alongside authentication plugins.
const DemoConsumer = "demo-user"

// Options tune the plugin defaults that the interactive flow lets users
// override. The zero value selects the standard defaults.
type Options struct {
	RateLimitPerMinute int
	LogEndpoint        string
}

func (o Options) rateLimit() int {
	if o.RateLimitPerMinute > 0 {
		return o.RateLimitPerMinute
	}
	return 60
}

func (o Options) logEndpoint() string {
	if o.LogEndpoint != "" {
		return o.LogEndpoint
	}
	return "http://logger:3000/log"
}

// builder mutates the configuration for one feature token.
type builder func(cfg *kong.Configuration, opts Options)

func authBuilder(name string) builder {
	return func(cfg *kong.Configuration, _ Options) {
		cfg.AddPlugin(name, nil)
		cfg.AddConsumer(DemoConsumer, name)
	}
}

var builders = map[string]builder{
	"key-auth":   authBuilder("key-auth"),
	"jwt":        authBuilder("jwt"),
	"oauth2":     authBuilder("oauth2"),
	"basic-auth": authBuilder("basic-auth"),

	"rate-limiting": func(cfg *kong.Configuration, opts Options) {
		cfg.AddPlugin("rate-limiting", map[string]any{
			"minute": opts.rateLimit(),
			"policy": "local",
		})
	},

	"response-transformer": func(cfg *kong.Configuration, _ Options) {
		cfg.AddPlugin("response-transformer", map[string]any{
			"add": map[string]any{"headers": []string{"x-kong-gateway: true"}},
		})
	},

	"request-transformer": func(cfg *kong.Configuration, _ Options) {
		cfg.AddPlugin("request-transformer", map[string]any{
			"add": map[string]any{"headers": []string{"x-kong-request: true"}},
		})
	},

	"http-log": func(cfg *kong.Configuration, opts Options) {
		cfg.AddPlugin("http-log", map[string]any{
			"http_endpoint": opts.logEndpoint(),
			"method":        "POST",
			"timeout":       10000,
			"keepalive":     60000,
		})
	},

	"cors": func(cfg *kong.Configuration, _ Options) {
		cfg.AddPlugin("cors", map[string]any{
			"origins":         []string{"*"},
			"methods":         []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
			"headers":         []string{"Content-Type", "Authorization"},
			"exposed_headers": []string{"X-Auth-Token"},
			"max_age":         3600,
		})
	},

	"proxy-cache": func(cfg *kong.Configuration, _ Options) {
		cfg.AddPlugin("proxy-cache", map[string]any{
			"strategy":      "memory",
			"content_type":  []string{"application/json", "application/xml"},
			"cache_ttl":     300,
			"cache_control": true,
		})
	},

	"ip-restriction": func(cfg *kong.Configuration, _ Options) {
		cfg.AddPlugin("ip-restriction", map[string]any{
			"allow": []string{"127.0.0.1/32"},
		})
	},

	"request-size-limiting": func(cfg *kong.Configuration, _ Options) {
		cfg.AddPlugin("request-size-limiting", map[string]any{
			"allowed_payload_size": 10,
		})
	},

	// request-termination has no global binding; it only makes sense on a
	// specific route, which this model does not represent. Record an
	// advisory note naming the newest route instead.
	"request-termination": func(cfg *kong.Configuration, _ Options) {
		if len(cfg.Routes) == 0 {
			return
		}
		last := cfg.Routes[len(cfg.Routes)-1]
		cfg.TerminationNote = fmt.Sprintf("request-termination should be applied to route: %s", last.Name)
	},
}

// aliases map alternate feature spellings onto table entries.
var aliases = map[string]string{
	"logging": "http-log",
	"cache":   "proxy-cache",
}

// Catalog lists the features offered to users. acl and bot-detection are
// selectable but currently have no construction rule; Apply ignores
// them like any other unrecognized token.
func Catalog() []string {
	return []string{
		"key-auth",
		"jwt",
		"oauth2",
		"basic-auth",
		"rate-limiting",
		"response-transformer",
		"request-transformer",
		"http-log",
		"cors",
		"proxy-cache",
		"ip-restriction",
		"request-size-limiting",
		"acl",
		"bot-detection",
	}
}

// Apply adds a plugin (and any side effects) for each requested feature
// token. Tokens are case-insensitive; unrecognized tokens are ignored,
// since feature selection is advisory rather than validated against a
// closed catalog.
func Apply(cfg *kong.Configuration, features []string, opts Options) {
	for _, feature := range features {
		token := strings.ToLower(strings.TrimSpace(feature))
		if target, ok := aliases[token]; ok {
			token = target
		}
		if build, ok := builders[token]; ok {
			build(cfg, opts)
		}
	}
}

package admin

import (
	"context"
	"fmt"
)

// MemoryClient is a stateful in-memory stand-in for the Admin API. It
// assigns sequential synthetic identifiers and never fails, which makes
// deployment logic deterministic to test without a running gateway. It
// is not safe for concurrent use; the deployer issues calls serially.
type MemoryClient struct {
	Services      []Object
	Routes        []Object
	Plugins       []Object
	Consumers     []Object
	ConsumerAuths []Object
}

// NewMemoryClient creates an empty in-memory gateway.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{}
}

// CreateService records a service.
func (m *MemoryClient) CreateService(_ context.Context, name, url string) (Object, error) {
	obj := Object{
		"name": name,
		"url":  url,
		"id":   fmt.Sprintf("service-%d", len(m.Services)+1),
	}
	m.Services = append(m.Services, obj)
	return obj, nil
}

// CreateRoute records a route.
func (m *MemoryClient) CreateRoute(_ context.Context, serviceName string, paths []string, name string) (Object, error) {
	obj := Object{
		"service": map[string]any{"name": serviceName},
		"paths":   paths,
		"id":      fmt.Sprintf("route-%d", len(m.Routes)+1),
	}
	if name != "" {
		obj["name"] = name
	}
	m.Routes = append(m.Routes, obj)
	return obj, nil
}

// CreatePlugin records a plugin.
func (m *MemoryClient) CreatePlugin(_ context.Context, name string, config map[string]any) (Object, error) {
	obj := Object{
		"name": name,
		"id":   fmt.Sprintf("plugin-%d", len(m.Plugins)+1),
	}
	if config != nil {
		obj["config"] = config
	}
	m.Plugins = append(m.Plugins, obj)
	return obj, nil
}

// CreateConsumer records a consumer.
func (m *MemoryClient) CreateConsumer(_ context.Context, username string) (Object, error) {
	obj := Object{
		"username": username,
		"id":       fmt.Sprintf("consumer-%d", len(m.Consumers)+1),
	}
	m.Consumers = append(m.Consumers, obj)
	return obj, nil
}

// AddConsumerAuth records a credential, synthesizing the demonstration
// credential when none is supplied.
func (m *MemoryClient) AddConsumerAuth(_ context.Context, username, authType string, credentials map[string]any) (Object, error) {
	if credentials == nil {
		if defaults, err := defaultCredentials(username, authType); err == nil {
			credentials = defaults
		}
	}
	obj := Object{
		"consumer": map[string]any{"username": username},
		"type":     authType,
		"id":       fmt.Sprintf("auth-%d", len(m.ConsumerAuths)+1),
	}
	if credentials != nil {
		obj["credentials"] = credentials
	}
	m.ConsumerAuths = append(m.ConsumerAuths, obj)
	return obj, nil
}

// Package admin replays a gateway configuration against the Kong Admin
// API. Creation order is fixed (services, routes, plugins, consumers)
// and a single failed call aborts the whole deployment with no rollback;
// re-running after a partial failure may hit uniqueness constraints on
// objects that were already created.
package admin

import (
	"context"
	"fmt"

	"github.com/Cinex10/kong-demo/internal/kong"
)

// Object is the remote representation returned for a created entity.
type Object map[string]any

// Client is the Kong Admin API surface the deployer needs.
type Client interface {
	CreateService(ctx context.Context, name, url string) (Object, error)
	CreateRoute(ctx context.Context, serviceName string, paths []string, name string) (Object, error)
	CreatePlugin(ctx context.Context, name string, config map[string]any) (Object, error)
	CreateConsumer(ctx context.Context, username string) (Object, error)
	AddConsumerAuth(ctx context.Context, username, authType string, credentials map[string]any) (Object, error)
}

// Results collects the remote objects created during a deployment, in
// the same order as the corresponding configuration lists.
type Results struct {
	Services  []Object
	Routes    []Object
	Plugins   []Object
	Consumers []Object
}

// Deploy creates every object of the configuration on the remote
// gateway: all services, then all routes, then plugins, then consumers
// with their credentials. The first failure aborts the run and surfaces
// to the caller; objects created up to that point are left in place.
func Deploy(ctx context.Context, client Client, cfg *kong.Configuration) (*Results, error) {
	results := &Results{}

	for _, service := range cfg.Services {
		obj, err := client.CreateService(ctx, service.Name, service.URL)
		if err != nil {
			return nil, err
		}
		results.Services = append(results.Services, obj)
	}

	for _, route := range cfg.Routes {
		obj, err := client.CreateRoute(ctx, route.ServiceName, route.Paths, route.Name)
		if err != nil {
			return nil, err
		}
		results.Routes = append(results.Routes, obj)
	}

	for _, p := range cfg.Plugins {
		obj, err := client.CreatePlugin(ctx, p.Name, p.Config)
		if err != nil {
			return nil, err
		}
		results.Plugins = append(results.Plugins, obj)
	}

	for _, consumer := range cfg.Consumers {
		obj, err := client.CreateConsumer(ctx, consumer.Username)
		if err != nil {
			return nil, err
		}
		results.Consumers = append(results.Consumers, obj)

		if consumer.AuthType != "" && consumer.AuthType != "none" {
			if _, err := client.AddConsumerAuth(ctx, consumer.Username, consumer.AuthType, nil); err != nil {
				return nil, err
			}
		}
	}

	return results, nil
}

// defaultCredentials builds the demonstration credential record for a
// consumer auth type.
func defaultCredentials(username, authType string) (map[string]any, error) {
	switch authType {
	case "key-auth":
		return map[string]any{"key": kong.DemoKey(username)}, nil
	case "jwt":
		return map[string]any{
			"key":    username + "-key",
			"secret": username + "-secret",
		}, nil
	case "basic-auth":
		return map[string]any{
			"username": username,
			"password": username + "-password",
		}, nil
	case "oauth2":
		return map[string]any{
			"name":          username + "-app",
			"redirect_uris": []string{"http://localhost/callback"},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported auth type: %s", authType)
	}
}

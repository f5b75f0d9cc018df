// Package scaffold writes a generated demo project to disk: the gateway
// configuration in three formats, a compose stack, setup/test/deploy
// scripts, a README, and one mock backend per service.
package scaffold

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"gopkg.in/yaml.v3"

	"github.com/Cinex10/kong-demo/internal/ai"
	"github.com/Cinex10/kong-demo/internal/kong"
	"github.com/Cinex10/kong-demo/internal/mock"
	"github.com/Cinex10/kong-demo/internal/spec"
)

//go:embed templates
var templateFS embed.FS

var templates = template.Must(
	template.New("scaffold").
		Funcs(sprig.TxtFuncMap()).
		Funcs(template.FuncMap{
			"pluginJSON": pluginJSON,
			"demoKey":    kong.DemoKey,
		}).
		ParseFS(templateFS, "templates/*.tmpl"),
)

// pluginJSON renders a plugin as the JSON body the Admin API accepts.
func pluginJSON(p kong.Plugin) (string, error) {
	payload := map[string]any{"name": p.Name}
	if p.Config != nil {
		payload["config"] = p.Config
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Writer writes demo projects under a base output directory.
type Writer struct {
	outputDir string
	client    ai.Client
}

// NewWriter creates a project writer. The AI client may be nil; mock
// generation then degrades to deterministic output.
func NewWriter(outputDir string, client ai.Client) *Writer {
	return &Writer{outputDir: outputDir, client: client}
}

// Result reports where a project was written and any degradations that
// happened along the way.
type Result struct {
	Dir      string
	Warnings []string
}

type templateData struct {
	ProjectName     string
	Config          *kong.Configuration
	AssumeRunning   bool
	APIKey          string
	FirstPath       string
	TerminationNote string
}

type renderedFile struct {
	template   string
	file       string
	executable bool
}

// WriteProject writes the complete file set for a project. When
// assumeRunning is set the compose stack omits the gateway itself and a
// deploy-to-kong.sh script is produced instead.
func (w *Writer) WriteProject(ctx context.Context, projectName string, cfg *kong.Configuration, assumeRunning bool) (*Result, error) {
	projectDir := filepath.Join(w.outputDir, projectName)
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create project directory: %w", err)
	}
	result := &Result{Dir: projectDir}

	configJSON, err := cfg.ToJSON()
	if err != nil {
		return nil, err
	}
	if err := writeFile(filepath.Join(projectDir, "kong-config.json"), configJSON, 0o644); err != nil {
		return nil, err
	}

	configYAML, err := cfg.ToYAML()
	if err != nil {
		return nil, err
	}
	if err := writeFile(filepath.Join(projectDir, "kong-config.yaml"), configYAML, 0o644); err != nil {
		return nil, err
	}

	declarative, err := yaml.Marshal(cfg.ToDeclarative())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal declarative config: %w", err)
	}
	if err := writeFile(filepath.Join(projectDir, "kong.yaml"), declarative, 0o644); err != nil {
		return nil, err
	}

	data := buildTemplateData(projectName, cfg, assumeRunning)

	rendered := []renderedFile{
		{"docker-compose.yaml.tmpl", "docker-compose.yaml", false},
		{"setup.sh.tmpl", "setup.sh", true},
		{"README.md.tmpl", "README.md", false},
		{"test-api.sh.tmpl", "test-api.sh", true},
	}
	if assumeRunning {
		rendered = append(rendered, renderedFile{"deploy-to-kong.sh.tmpl", "deploy-to-kong.sh", true})
	}

	for _, r := range rendered {
		content, err := render(r.template, data)
		if err != nil {
			return nil, err
		}
		mode := os.FileMode(0o644)
		if r.executable {
			mode = 0o755
		}
		if err := writeFile(filepath.Join(projectDir, r.file), []byte(content), mode); err != nil {
			return nil, err
		}
	}

	for _, service := range cfg.Services {
		if err := w.writeMockAPI(ctx, projectDir, service, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func buildTemplateData(projectName string, cfg *kong.Configuration, assumeRunning bool) templateData {
	data := templateData{
		ProjectName:     projectName,
		Config:          cfg,
		AssumeRunning:   assumeRunning,
		TerminationNote: cfg.TerminationNote,
	}
	if auth := cfg.AuthPlugin(); auth != nil && auth.Name == "key-auth" {
		for _, consumer := range cfg.Consumers {
			if consumer.AuthType == "key-auth" {
				data.APIKey = kong.DemoKey(consumer.Username)
				break
			}
		}
	}
	if len(cfg.Routes) > 0 && len(cfg.Routes[0].Paths) > 0 {
		data.FirstPath = cfg.Routes[0].Paths[0]
	}
	return data
}

// writeMockAPI generates and writes the mock backend for one service.
func (w *Writer) writeMockAPI(ctx context.Context, projectDir string, service kong.Service, result *Result) error {
	mockDir := filepath.Join(projectDir, "mock-apis", service.Name)
	if err := os.MkdirAll(mockDir, 0o755); err != nil {
		return fmt.Errorf("failed to create mock API directory: %w", err)
	}

	generator, businessType, opts := w.generatorFor(service)

	files, err := generator.Generate(ctx, service.Name, businessType, opts)
	if err != nil {
		if files == nil {
			return err
		}
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", service.Name, err))
	}

	for name, content := range files {
		if err := writeFile(filepath.Join(mockDir, name), []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// generatorFor picks the mock generator for a service: specification
// metadata wins, then the business type dispatch, then basic CRUD.
func (w *Writer) generatorFor(service kong.Service) (mock.Generator, string, mock.Options) {
	businessType := "generic"
	opts := mock.Options{}

	meta := service.Metadata
	if meta == nil {
		return mock.NewBasicGenerator(), businessType, opts
	}
	if meta.BusinessType != "" {
		businessType = meta.BusinessType
	}
	opts = optionsFromParams(meta.BusinessParams)

	if len(meta.Specification) > 0 {
		if serviceSpec, err := specFromFragment(meta.Specification); err == nil {
			return mock.NewSpecGenerator(&spec.Spec{Services: []spec.ServiceSpec{*serviceSpec}}), businessType, opts
		}
	}
	return mock.ForBusinessType(businessType, w.client), businessType, opts
}

// specFromFragment rebuilds a ServiceSpec from the loosely typed
// metadata bag a configuration file carries.
func specFromFragment(fragment map[string]any) (*spec.ServiceSpec, error) {
	raw, err := json.Marshal(fragment)
	if err != nil {
		return nil, err
	}
	var serviceSpec spec.ServiceSpec
	if err := json.Unmarshal(raw, &serviceSpec); err != nil {
		return nil, err
	}
	return &serviceSpec, nil
}

func optionsFromParams(params map[string]any) mock.Options {
	opts := mock.Options{}
	if v, ok := params["policy_type"].(string); ok {
		opts.PolicyType = v
	}
	if v, ok := params["product_type"].(string); ok {
		opts.ProductType = v
	}
	switch features := params["features"].(type) {
	case []string:
		opts.Features = features
	case []any:
		for _, f := range features {
			if s, ok := f.(string); ok {
				opts.Features = append(opts.Features, s)
			}
		}
	}
	return opts
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

func writeFile(path string, content []byte, mode os.FileMode) error {
	if err := os.WriteFile(path, content, mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

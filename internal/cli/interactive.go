package cli

import (
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/Cinex10/kong-demo/internal/plugin"
)

// businessTypes are the domains the generator knows how to mock.
var businessTypes = []string{
	"generic",
	"insurance",
	"insurance-policy",
	"insurance-claims",
	"ecommerce",
	"ecommerce-product",
	"ecommerce-order",
	"health-insurance",
	"auto-insurance",
}

var policyTypes = []string{"auto", "health", "home", "life", "travel"}

var productTypes = []string{"electronics", "clothing", "groceries", "furniture", "books"}

type generateInput struct {
	ProjectName  string
	BusinessType string
	Params       map[string]any
	Features     []string
	PluginOpts   plugin.Options
}

// collectInput walks the user through the interactive setup.
func collectInput(opts *GenerateOptions) (*generateInput, error) {
	input := &generateInput{Params: map[string]any{}}

	input.ProjectName = opts.Project
	if input.ProjectName == "" {
		prompt := &survey.Input{Message: "Project name:"}
		if err := survey.AskOne(prompt, &input.ProjectName, survey.WithValidator(survey.Required)); err != nil {
			return nil, err
		}
	}

	if err := survey.AskOne(&survey.Select{
		Message: "Business domain for your API:",
		Options: businessTypes,
		Default: "generic",
	}, &input.BusinessType); err != nil {
		return nil, err
	}

	switch {
	case strings.Contains(input.BusinessType, "insurance"):
		var policyType string
		if err := survey.AskOne(&survey.Select{
			Message: "Insurance policy type:",
			Options: policyTypes,
			Default: "auto",
		}, &policyType); err != nil {
			return nil, err
		}
		input.Params["policy_type"] = policyType

	case strings.Contains(input.BusinessType, "product"):
		var productType string
		if err := survey.AskOne(&survey.Select{
			Message: "Product type:",
			Options: productTypes,
			Default: "electronics",
		}, &productType); err != nil {
			return nil, err
		}
		input.Params["product_type"] = productType
	}

	if err := survey.AskOne(&survey.MultiSelect{
		Message: "Kong Gateway features to include:",
		Options: plugin.Catalog(),
	}, &input.Features); err != nil {
		return nil, err
	}
	if len(input.Features) == 0 {
		input.Features = []string{"key-auth"}
	}
	input.Params["features"] = input.Features

	if hasFeature(input.Features, "rate-limiting") {
		limit, err := askInt("Requests per minute:", 60)
		if err != nil {
			return nil, err
		}
		input.PluginOpts.RateLimitPerMinute = limit
	}
	if hasFeature(input.Features, "http-log") {
		var endpoint string
		if err := survey.AskOne(&survey.Input{
			Message: "Log endpoint URL:",
			Default: "http://logger:3000/log",
		}, &endpoint); err != nil {
			return nil, err
		}
		input.PluginOpts.LogEndpoint = endpoint
	}

	return input, nil
}

func hasFeature(features []string, name string) bool {
	for _, f := range features {
		if strings.EqualFold(strings.TrimSpace(f), name) {
			return true
		}
	}
	return false
}

func askInt(message string, defaultValue int) (int, error) {
	var answer string
	prompt := &survey.Input{
		Message: message,
		Default: strconv.Itoa(defaultValue),
	}
	validator := func(ans interface{}) error {
		s, _ := ans.(string)
		if s == "" {
			return nil
		}
		_, err := strconv.Atoi(s)
		return err
	}
	if err := survey.AskOne(prompt, &answer, survey.WithValidator(validator)); err != nil {
		return 0, err
	}
	if answer == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(answer)
}

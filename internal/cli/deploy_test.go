package cli

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeployCmdFlags(t *testing.T) {
	cmd := newDeployCmd()
	assert.NotNil(t, cmd.Flags().Lookup("project"))
	assert.NotNil(t, cmd.Flags().Lookup("output-dir"))
}

func TestDeployCommand(t *testing.T) {
	isolateUserConfig(t)
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"x"}`))
	}))
	defer server.Close()

	outputDir := t.TempDir()
	projectDir := filepath.Join(outputDir, "demo")
	require.NoError(t, os.MkdirAll(projectDir, 0o755))
	writeConfigFile(t, projectDir)

	cmd := newDeployCmd()
	cmd.SetArgs([]string{server.URL, "--project", "demo", "--output-dir", outputDir})
	require.NoError(t, cmd.Execute())

	// One service, one route, one plugin, one consumer plus its credential.
	assert.Equal(t, []string{
		"/services",
		"/services/users/routes",
		"/plugins",
		"/consumers",
		"/consumers/demo-user/key-auth",
	}, paths)
}

func TestDeployCommandMissingProject(t *testing.T) {
	isolateUserConfig(t)
	cmd := newDeployCmd()
	cmd.SetArgs([]string{"http://localhost:8001", "--project", "nope", "--output-dir", t.TempDir()})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	assert.Error(t, cmd.Execute())
}

func TestFeaturesCommand(t *testing.T) {
	cmd := newFeaturesCmd()
	cmd.SetArgs([]string{})
	assert.NoError(t, cmd.Execute())
}

package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_BasicFields(t *testing.T) {
	data := []byte(`
requires:
  components: [lib, {id: toolchain, instance: primary}]
  features:
    - logging
    - name: metrics
      condition: debug
  data: [/app/name]
provides:
  features: [app-feature]
replaces:
  component: legacy-app
`)
	m, err := Parse(data, "app", "app.yaml")
	require.NoError(t, err)

	assert.Equal(t, "app", m.ID)
	assert.Equal(t, "app.yaml", m.Source)
	assert.Equal(t, []string{"lib", "toolchain"}, m.RequiresComponents)
	assert.Equal(t, []string{"logging", "metrics"}, m.RequiresFeatures)
	assert.Equal(t, []string{"/app/name"}, m.RequiresData)
	assert.Equal(t, []string{"app-feature"}, m.ProvidesFeatures)
	assert.Equal(t, "legacy-app", m.Replaces)
}

func TestParse_ExplicitIDOverridesCallerID(t *testing.T) {
	data := []byte(`id: real-id`)
	m, err := Parse(data, "derived-id", "x.yaml")
	require.NoError(t, err)
	assert.Equal(t, "real-id", m.ID)
}

func TestParse_EmptyDocumentProducesEmptyManifest(t *testing.T) {
	m, err := Parse([]byte(``), "empty", "empty.yaml")
	require.NoError(t, err)
	assert.Equal(t, "empty", m.ID)
	assert.NotNil(t, m.Raw)
	assert.Empty(t, m.RequiresComponents)
}

func TestParse_InvalidYAMLErrors(t *testing.T) {
	_, err := Parse([]byte("key: [unterminated"), "bad", "bad.yaml")
	assert.Error(t, err)
}

func TestParse_Choices(t *testing.T) {
	data := []byte(`
choices:
  variant:
    description: pick a variant
    features: [feature-a, feature-b]
    default: feature-a
    exclusive: true
`)
	m, err := Parse(data, "c", "c.yaml")
	require.NoError(t, err)

	choice, ok := m.Choices["variant"]
	require.True(t, ok)
	assert.Equal(t, "pick a variant", choice.Description)
	assert.Equal(t, []string{"feature-a", "feature-b"}, choice.Features)
	assert.Equal(t, "feature-a", choice.Default)
	assert.True(t, choice.Exclusive)
}

func TestParse_Blueprints(t *testing.T) {
	data := []byte(`
blueprints:
  "build/{target}":
    regex: true
    group: build
    requirements: [gcc]
    depends:
      - "lib/{target}.a"
      - name: "data/{target}"
        type: data
    process:
      - command: "compile"
`)
	m, err := Parse(data, "toolchain", "toolchain.yaml")
	require.NoError(t, err)

	b, ok := m.Blueprints["build/{target}"]
	require.True(t, ok)
	assert.True(t, b.Regex)
	assert.Equal(t, "build", b.Group)
	assert.Equal(t, []string{"gcc"}, b.Requirements)
	require.Len(t, b.Depends, 2)
	assert.Equal(t, "lib/{target}.a", b.Depends[0].Name)
	assert.Equal(t, "", b.Depends[0].Type)
	assert.Equal(t, "data/{target}", b.Depends[1].Name)
	assert.Equal(t, "data", b.Depends[1].Type)
	require.Len(t, b.Process, 1)
}

func TestParse_SLCFieldsPopulateDecl(t *testing.T) {
	data := []byte(`
instantiable:
  prefix: svc
instances: [svc-a, svc-b]
recommends: [logging]
config_file:
  - file_id: main-cfg
    source: templates/main.cfg
    filename: main.cfg
    condition: debug
    override:
      file_id: base-cfg
template_contribution:
  - name: includes
    priority: 10
    value: "-Iinclude"
template_file: [templates/main.tmpl]
toolchain_settings:
  - option: optimize
    value: "2"
component_path: [components/svc]
`)
	m, err := Parse(data, "svc", "svc.yaml")
	require.NoError(t, err)
	require.NotNil(t, m.SLC)

	assert.Equal(t, "svc", m.SLC.InstancePrefix)
	assert.Equal(t, []string{"svc-a", "svc-b"}, m.SLC.Instances)
	assert.Equal(t, []string{"logging"}, m.SLC.Recommends)
	require.Len(t, m.SLC.ConfigFiles, 1)
	assert.Equal(t, "main-cfg", m.SLC.ConfigFiles[0].FileID)
	assert.Equal(t, []string{"debug"}, m.SLC.ConfigFiles[0].Condition)
	assert.Equal(t, "base-cfg", m.SLC.ConfigFiles[0].Override)
	require.Len(t, m.SLC.TemplateContributions, 1)
	assert.Equal(t, 10, m.SLC.TemplateContributions[0].Priority)
	assert.Equal(t, []string{"templates/main.tmpl"}, m.SLC.TemplateFiles)
	require.Len(t, m.SLC.ToolchainSettings, 1)
	assert.Equal(t, "optimize", m.SLC.ToolchainSettings[0].Option)
	assert.Equal(t, []string{"components/svc"}, m.SLC.ComponentPaths)
}

func TestParse_NoSLCFieldsLeavesSLCNil(t *testing.T) {
	m, err := Parse([]byte(`requires: {components: [lib]}`), "plain", "plain.yaml")
	require.NoError(t, err)
	assert.Nil(t, m.SLC)
}

func TestIDFromPath(t *testing.T) {
	assert.Equal(t, "toolchains.gcc-arm", IDFromPath("toolchains.gcc-arm.yaml"))
	assert.Equal(t, "app", IDFromPath("app.yml"))
	assert.Equal(t, "nested.app", IDFromPath("dir/nested.app.yaml"))
}

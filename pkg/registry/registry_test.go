package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	reg := Default()
	require.NoError(t, reg.Validate())

	a, ok := reg.Find("match-providers")
	require.True(t, ok)
	assert.Equal(t, "matching", a.Category)

	_, ok = reg.Find("email.send")
	assert.False(t, ok)
}

func TestCheckTaskTypes(t *testing.T) {
	reg := Default()
	assert.NoError(t, reg.CheckTaskTypes([]string{"match-providers", "send-match-summary"}))

	err := reg.CheckTaskTypes([]string{"match-providers", "crm-user-create"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "crm-user-create")
}

func TestValidate_Duplicates(t *testing.T) {
	reg := &ActivityRegistry{Activities: []Activity{
		{ID: "a", TaskType: "t"},
		{ID: "a", TaskType: "t"},
		{},
	}}
	err := reg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate id "a"`)
	assert.Contains(t, err.Error(), `duplicate taskType "t"`)
	assert.Contains(t, err.Error(), "activities[2]: id is required")
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	data, err := json.Marshal(Default())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Len(t, reg.Activities, 4)

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPersonaRegistry(t *testing.T) {
	reg := DefaultPersonaRegistry()

	assert.Len(t, reg, 4)
	assert.Equal(t, "拍照打卡", reg.Keyword(PersonaPhotography))
	assert.Equal(t, "美食推荐", reg.Keyword(PersonaFoodie))
	assert.Empty(t, reg.Keyword(Persona("spelunking")))
	assert.Equal(t, "general travel experiences", reg.Hint(Persona("spelunking")))
	assert.Contains(t, reg.Hint(PersonaChilling), "relaxed")
}

func TestLoadPersonaRegistry_Overlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "personas.yaml")
	content := `
foodie:
  keywords: ["street food"]
  hint: "night markets and hawker stalls"
nightlife:
  keywords: ["酒吧"]
  hint: "bars, live music, late-night venues"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	reg, err := LoadPersonaRegistry(path)
	require.NoError(t, err)

	// Overlay replaces named entries and keeps the rest.
	assert.Equal(t, "street food", reg.Keyword(PersonaFoodie))
	assert.Equal(t, "酒吧", reg.Keyword(Persona("nightlife")))
	assert.Equal(t, "拍照打卡", reg.Keyword(PersonaPhotography))
}

func TestLoadPersonaRegistry_MissingFile(t *testing.T) {
	_, err := LoadPersonaRegistry("/nonexistent/personas.yaml")
	assert.Error(t, err)
}

func TestJoinPersonas(t *testing.T) {
	ps := []Persona{PersonaPhotography, PersonaFoodie}
	assert.Equal(t, "photography & foodie", JoinPersonas(ps))
	assert.Equal(t, "Photography & Foodie", DisplayPersonas(ps))
	assert.Equal(t, "chilling", JoinPersonas([]Persona{PersonaChilling}))
}

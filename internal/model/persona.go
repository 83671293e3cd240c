package model

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Persona is a traveler-style tag used to bias discovery queries and
// verification scoring.
type Persona string

const (
	PersonaPhotography Persona = "photography"
	PersonaChilling    Persona = "chilling"
	PersonaFoodie      Persona = "foodie"
	PersonaExercise    Persona = "exercise"
)

// PersonaProfile holds the search keywords and the judge hint for one persona.
type PersonaProfile struct {
	Keywords []string `yaml:"keywords"`
	Hint     string   `yaml:"hint"`
}

// PersonaRegistry maps persona tags to their keyword/hint profiles. It is
// read-mostly and safe to share across concurrent planning runs.
type PersonaRegistry map[Persona]PersonaProfile

// DefaultPersonaRegistry returns the built-in persona table. Keywords are the
// query fragments appended to the destination; hints steer the judge.
func DefaultPersonaRegistry() PersonaRegistry {
	return PersonaRegistry{
		PersonaPhotography: {
			Keywords: []string{"拍照打卡", "摄影景点", "ins风"},
			Hint:     "scenic views, good lighting, Instagram-worthy spots, unique architecture",
		},
		PersonaChilling: {
			Keywords: []string{"咖啡厅", "休闲", "氛围感"},
			Hint:     "relaxed atmosphere, cafes, parks, low-key hangouts, peaceful vibes",
		},
		PersonaFoodie: {
			Keywords: []string{"美食推荐", "必吃", "特色小吃"},
			Hint:     "authentic cuisine, local specialties, interesting dining experiences",
		},
		PersonaExercise: {
			Keywords: []string{"徒步", "户外运动", "骑行"},
			Hint:     "hiking, outdoor activities, sports facilities, wellness centres",
		},
	}
}

// LoadPersonaRegistry reads a persona registry from a YAML file, overlaying
// entries onto the defaults so a partial file only replaces what it names.
func LoadPersonaRegistry(path string) (PersonaRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "persona: read registry file")
	}
	var overlay map[Persona]PersonaProfile
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, eris.Wrap(err, "persona: parse registry file")
	}
	reg := DefaultPersonaRegistry()
	for p, profile := range overlay {
		reg[p] = profile
	}
	return reg, nil
}

// Keyword returns the primary search keyword for a persona, or "" when the
// persona is unknown.
func (r PersonaRegistry) Keyword(p Persona) string {
	profile, ok := r[p]
	if !ok || len(profile.Keywords) == 0 {
		return ""
	}
	return profile.Keywords[0]
}

// Hint returns the judge hint for a persona, with a generic default for
// unknown tags.
func (r PersonaRegistry) Hint(p Persona) string {
	profile, ok := r[p]
	if !ok || profile.Hint == "" {
		return "general travel experiences"
	}
	return profile.Hint
}

// JoinPersonas renders a persona list as the combined description passed to
// the judge, e.g. "photography & foodie".
func JoinPersonas(ps []Persona) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = string(p)
	}
	return strings.Join(parts, " & ")
}

var titleCaser = cases.Title(language.English)

// DisplayPersonas renders a persona list for user-facing output,
// e.g. "Photography & Foodie".
func DisplayPersonas(ps []Persona) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = titleCaser.String(string(p))
	}
	return strings.Join(parts, " & ")
}

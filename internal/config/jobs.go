package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Download modes select which pack channel the data comes from.
const (
	ModeStable = "stable"
	ModeBeta   = "beta"
)

// ErrInvalidJobs indicates the job configuration does not match its schema.
var ErrInvalidJobs = errors.New("invalid job configuration")

// ErrMalformedJobs indicates the job configuration is not valid YAML.
var ErrMalformedJobs = errors.New("malformed job configuration")

// Jobs describes where pack data lives and which wiki pages are regenerated.
type Jobs struct {
	Mode    string     `yaml:"mode" json:"mode"`
	Packs   PackPaths  `yaml:"packs" json:"packs"`
	Markers MarkerPair `yaml:"markers" json:"markers"`
	Limits  Limits     `yaml:"limits" json:"limits"`
	Pages   Pages      `yaml:"pages" json:"pages"`

	// dir is the directory pack paths are resolved against.
	dir string
}

// PackPaths locates the extracted packs and custom data.
type PackPaths struct {
	Resource string `yaml:"resource" json:"resource"`
	Behavior string `yaml:"behavior" json:"behavior"`
	Custom   string `yaml:"custom" json:"custom"`
}

// MarkerPair holds the region sentinels.
type MarkerPair struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// Limits caps the examples shown on vanilla usage pages. -1 disables a limit.
type Limits struct {
	Examples       int `yaml:"examples" json:"examples"`
	EntityExamples int `yaml:"entity_examples" json:"entity_examples"`
}

// Pages maps each generated section to a page path relative to the wiki root.
type Pages struct {
	BlockSounds        string `yaml:"block_sounds" json:"block_sounds"`
	NBTCommands        string `yaml:"nbt_commands" json:"nbt_commands"`
	CreativeCategories string `yaml:"creative_categories" json:"creative_categories"`
	FogIDs             string `yaml:"fog_ids" json:"fog_ids"`
	SoundDefinitions   string `yaml:"sound_definitions" json:"sound_definitions"`
	BiomeTags          string `yaml:"biome_tags" json:"biome_tags"`
	SpawnRules         string `yaml:"spawn_rules" json:"spawn_rules"`
	Items              string `yaml:"items" json:"items"`
	Entities           string `yaml:"entities" json:"entities"`
}

// DefaultJobs returns the configuration used when no wikigen.yaml exists.
func DefaultJobs() Jobs {
	return Jobs{
		Mode: ModeStable,
		Packs: PackPaths{
			Resource: "packs/rp",
			Behavior: "packs/bp",
			Custom:   "custom_data",
		},
		Markers: MarkerPair{
			Start: "<!-- page_dumper_start -->",
			End:   "<!-- page_dumper_end -->",
		},
		Limits: Limits{
			Examples:       8,
			EntityExamples: 3,
		},
		Pages: Pages{
			BlockSounds:        "docs/blocks/block-sounds.md",
			NBTCommands:        "docs/commands/nbt-commands.md",
			CreativeCategories: "docs/documentation/creative-categories.md",
			FogIDs:             "docs/documentation/fog-ids.md",
			SoundDefinitions:   "docs/documentation/sound-definitions.md",
			BiomeTags:          "docs/world-generation/biome-tags.md",
			SpawnRules:         "docs/entities/vanilla-usage-spawn-rules.md",
			Items:              "docs/items/vanilla-usage-items.md",
			Entities:           "docs/entities/vanilla-usage-components.md",
		},
	}
}

// LoadJobs reads the job configuration at path over the defaults. A missing
// file yields the defaults when allowMissing is set.
func LoadJobs(path string, allowMissing bool) (*Jobs, error) {
	jobs := DefaultJobs()
	jobs.dir = filepath.Dir(path)

	// #nosec G304 -- config path provided via command flag
	data, err := os.ReadFile(path)
	if err != nil {
		if allowMissing && errors.Is(err, os.ErrNotExist) {
			return &jobs, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedJobs, path, err)
	}
	if err := ValidateJobs(&jobs); err != nil {
		return nil, err
	}
	return &jobs, nil
}

// Encode serialises the configuration as YAML.
func (j *Jobs) Encode() ([]byte, error) {
	data, err := yaml.Marshal(j)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// Preview reports whether the data comes from beta packs.
func (j *Jobs) Preview() bool {
	return j.Mode == ModeBeta
}

// PackPath resolves a pack path against the configuration directory.
func (j *Jobs) PackPath(rel string) string {
	if filepath.IsAbs(rel) || j.dir == "" {
		return filepath.FromSlash(rel)
	}
	return filepath.Join(j.dir, filepath.FromSlash(rel))
}

const jobsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["mode", "packs", "markers", "limits", "pages"],
  "properties": {
    "mode": {"type": "string", "enum": ["stable", "beta"]},
    "packs": {
      "type": "object",
      "required": ["resource", "behavior", "custom"],
      "properties": {
        "resource": {"type": "string", "minLength": 1},
        "behavior": {"type": "string", "minLength": 1},
        "custom": {"type": "string", "minLength": 1}
      }
    },
    "markers": {
      "type": "object",
      "required": ["start", "end"],
      "properties": {
        "start": {"type": "string", "minLength": 1, "pattern": "^[^\\n]+$"},
        "end": {"type": "string", "minLength": 1, "pattern": "^[^\\n]+$"}
      }
    },
    "limits": {
      "type": "object",
      "properties": {
        "examples": {"type": "integer", "anyOf": [{"const": -1}, {"minimum": 1}]},
        "entity_examples": {"type": "integer", "anyOf": [{"const": -1}, {"minimum": 1}]}
      }
    },
    "pages": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    }
  }
}`

// ValidateJobs checks the configuration against the embedded JSON schema.
func ValidateJobs(j *Jobs) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(jobsSchema),
		gojsonschema.NewGoLoader(j),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidJobs, strings.Join(msgs, "; "))
}

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bedrock-oss/wikigen/internal/config"
)

// Start and End are the default region markers.
const (
	Start = "<!-- page_dumper_start -->"
	End   = "<!-- page_dumper_end -->"
)

// Fixture provides a temporary wiki checkout next to extracted sample packs.
// Pack paths follow the defaults of config.DefaultJobs, resolved against Root.
type Fixture struct {
	Root       string
	ConfigPath string
}

// NewFixture lays out marker pages for the spliced sections and a small
// resource pack, behavior pack and custom biome set.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()
	f := &Fixture{Root: t.TempDir()}
	f.ConfigPath = filepath.Join(f.Root, config.DefaultConfigFile)

	for rel, content := range samplePages {
		f.WriteFile(t, rel, []byte(content))
	}
	for rel, content := range samplePacks {
		f.WriteFile(t, rel, []byte(content))
	}
	return f
}

// Options returns cli options initialised for the fixture.
func (f *Fixture) Options(t *testing.T, jsonOut, verbose, dry bool) *config.Options {
	t.Helper()
	opts := config.New()
	if err := opts.Init(f.Root, f.ConfigPath, jsonOut, verbose, dry, ""); err != nil {
		t.Fatalf("failed to init options: %v", err)
	}
	return opts
}

// Jobs loads the fixture configuration, falling back to the defaults.
func (f *Fixture) Jobs(t *testing.T) *config.Jobs {
	t.Helper()
	jobs, err := config.LoadJobs(f.ConfigPath, true)
	if err != nil {
		t.Fatalf("failed to load jobs: %v", err)
	}
	return jobs
}

// WriteFile writes a file relative to the fixture root.
func (f *Fixture) WriteFile(t *testing.T, relative string, data []byte) {
	t.Helper()
	path := f.Path(relative)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

// ReadFile returns the content of a file relative to the fixture root.
func (f *Fixture) ReadFile(t *testing.T, relative string) string {
	t.Helper()
	data, err := os.ReadFile(f.Path(relative))
	if err != nil {
		t.Fatalf("failed to read %s: %v", relative, err)
	}
	return string(data)
}

// Path resolves a slash separated path relative to the fixture root.
func (f *Fixture) Path(relative string) string {
	return filepath.Join(f.Root, filepath.FromSlash(relative))
}

var samplePages = map[string]string{
	"docs/blocks/block-sounds.md": "---\ntitle: Block Sounds\n---\n\n## Sounds\n\n" +
		Start + "\nold table\n" + End + "\n\nFooter text.\n",
	"docs/commands/nbt-commands.md": "---\ntitle: NBT Commands\n---\n\n## can_place_on everything\n\n" +
		Start + "\n" + End + "\n",
	"docs/documentation/creative-categories.md": "---\ntitle: Creative Categories\n---\n\n" +
		Start + "\n" + End + "\n",
	"docs/documentation/fog-ids.md": "---\ntitle: Fog IDs\n---\n\n" +
		Start + "\n" + End + "\n",
}

var samplePacks = map[string]string{
	"packs/rp/manifest.json": `{
	"format_version": 2,
	"header": {"name": "Vanilla", "min_engine_version": [1, 21, 0]}
}`,
	"packs/rp/blocks.json": `{
	// comments are allowed in vanilla files
	"format_version": [1, 1, 0],
	"stone": {"sound": "stone"},
	"grass": {"sound": "grass"},
	"dirt": {"sound": "gravel"},
	"cobblestone": {"sound": "stone"},
	"air": {}
}`,
	"packs/rp/texts/en_US.lang": "\ufeffitemGroup.name.planks=Planks\n" +
		"tile.stone.name=Stone\n" +
		"itemGroup.name.walls=Walls    #\n",
	"packs/rp/biomes_client.json": `{
	"biomes": {
		"plains": {"fog_identifier": "minecraft:fog_plains"},
		"desert": {"fog_identifier": "minecraft:fog_desert"},
		"default": {"water_surface_color": "#44aff5"},
	}
}`,
	"packs/rp/sounds/sound_definitions.json": `{
	"format_version": "1.14.0",
	"sound_definitions": {
		"ambient.cave": {"category": "ambient", "sounds": []},
		"block.click": {"category": "block", "sounds": []},
		"ambient.weather.rain": {"category": "weather", "sounds": []}
	}
}`,
	"packs/bp/spawn_rules/zombie.json": `{
	"format_version": "1.8.0",
	"minecraft:spawn_rules": {
		"description": {"identifier": "minecraft:zombie"},
		"conditions": [
			{"minecraft:spawns_on_surface": {}, "minecraft:weight": {"default": 100}}
		]
	}
}`,
	"packs/bp/items/apple.json": `{
	"format_version": "1.16.0",
	"minecraft:item": {
		"description": {"identifier": "minecraft:apple"},
		"components": {"minecraft:food": {"nutrition": 4}}
	}
}`,
	"packs/bp/entities/cow.json": `{
	"format_version": "1.16.0",
	"minecraft:entity": {
		"description": {"identifier": "minecraft:cow"},
		"components": {"minecraft:health": {"value": 10}},
		"component_groups": {
			"minecraft:cow_baby": {"minecraft:is_baby": {}}
		}
	}
}`,
	"custom_data/biomes/plains.biome.json": `{
	"format_version": "1.13.0",
	"minecraft:biome": {
		"description": {"identifier": "plains"},
		"components": {"minecraft:climate": {"temperature": 0.8}, "plains": {}, "overworld": {}}
	}
}`,
}

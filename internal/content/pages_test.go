package content

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bedrock-oss/wikigen/internal/pack"
)

func TestSoundDefinitions(t *testing.T) {
	p := SoundDefinitions("sounds.md", []pack.Sound{
		{Name: "block.click", Category: "block"},
		{Name: "ambient.weather.rain", Category: "weather"},
		{Name: "ambient.cave", Category: "ambient"},
		{Name: "ambient.candle", Category: "ambient"},
		{Name: "loose", Category: ""},
	}, stamp)

	assert.Equal(t, "Sound Definitions", p.FrontMatter.Title)
	assert.Equal(t, []string{maintainer}, p.FrontMatter.Mentions)

	body := p.Body
	assert.True(t, strings.HasPrefix(body, "Sounds from `sound_definitions.json`"))
	assert.Contains(t, body, stamp+"\n\n")
	assert.Contains(t, body, "## ambient\n\n#### ambient\n---\n`ambient.candle`\n\n`ambient.cave`\n\n")
	assert.Contains(t, body, "## No category\n\n`loose`\n\n")

	ambient := strings.Index(body, "## ambient")
	block := strings.Index(body, "## block")
	weather := strings.Index(body, "## weather")
	none := strings.Index(body, "## No category")
	assert.True(t, ambient < block && block < weather && weather < none, "categories out of order")
}

func TestSoundDefinitionsOmitsEmptyNoCategory(t *testing.T) {
	p := SoundDefinitions("sounds.md", []pack.Sound{{Name: "a.b", Category: "block"}}, stamp)
	assert.NotContains(t, p.Body, noCategory)
}

func TestBiomeTags(t *testing.T) {
	p, err := BiomeTags("tags.md", []pack.Biome{
		{Name: "plains", Identifier: "plains", Tags: []string{"plains", "overworld"}},
	}, "*Last updated on 05 March 2024*")
	require.NoError(t, err)

	assert.Equal(t, "Biome Tags", p.FrontMatter.Title)
	assert.Equal(t, docCategory, p.FrontMatter.Category)
	assert.Contains(t, p.Body, "## Biome tag per Biome\n\n"+
		"| Biome  | Biome Tags        | \n"+
		"| ------ | ----------------- | \n"+
		"| plains | plains, overworld | \n")
	assert.Contains(t, p.Body, "## Biome per Biome Tag\n\n"+
		"| Biome Tag | Biomes | \n"+
		"| --------- | ------ | \n"+
		"| overworld | plains | \n"+
		"| plains    | plains | \n")
}

func usage(owner, group, data string) pack.Usage {
	return pack.Usage{Owner: owner, Group: group, Data: json.RawMessage(data)}
}

func TestVanillaUsageLimited(t *testing.T) {
	comps := pack.Components{
		"minecraft:health": {
			usage("minecraft:cow", "", `{"value": 10}`),
			usage("minecraft:cow", "minecraft:cow_adult", `{"value": 12}`),
			usage("minecraft:cow", "minecraft:cow_big", `{"value": 20}`),
			usage("minecraft:pig", "", `{"value": 10}`),
			usage("minecraft:sheep", "", `{"value": 8}`),
		},
	}
	p, err := VanillaUsage(Entities, "vuc.md", comps, Limits{PerComponent: 2, PerOwner: 1}, stamp)
	require.NoError(t, err)

	assert.Equal(t, "Vanilla Usage Components", p.FrontMatter.Title)
	assert.False(t, p.FrontMatter.Hidden)
	assert.Contains(t, p.Body, "not more than 2 example(s) for each component")
	assert.Contains(t, p.Body, "[here](/entities/vuc-full)")
	assert.Contains(t, p.Body, "## health\n\n<Spoiler title=\"Show\">\n\ncow\n\n<CodeHeader></CodeHeader>\n\n```json\n\"minecraft:health\": {\n    \"value\": 10\n}\n```\n\n")
	assert.NotContains(t, p.Body, "cow_adult")
	assert.Contains(t, p.Body, "pig\n\n")
	assert.NotContains(t, p.Body, "sheep")
	assert.Equal(t, 2, strings.Count(p.Body, "```json"))
	assert.True(t, strings.HasSuffix(p.Body, "</Spoiler>\n\n"))
}

func TestVanillaUsageGroupHeader(t *testing.T) {
	comps := pack.Components{
		"minecraft:is_baby": {usage("minecraft:cow", "minecraft:cow_baby", `{}`)},
	}
	p, err := VanillaUsage(Entities, "vuc.md", comps, Limits{PerComponent: 8, PerOwner: 3}, stamp)
	require.NoError(t, err)
	assert.Contains(t, p.Body, "<CodeHeader>#component_groups/minecraft:cow_baby</CodeHeader>")
}

func TestVanillaUsageFull(t *testing.T) {
	comps := pack.Components{
		"minecraft:food": {
			usage("minecraft:apple", "", `{"nutrition": 4}`),
			usage("minecraft:bread", "", `{"nutrition": 5}`),
		},
	}
	p, err := VanillaUsage(Items, "vui-full.md", comps, Limits{PerComponent: -1, PerOwner: 3}, stamp)
	require.NoError(t, err)

	assert.Equal(t, "Vanilla Usage Items - Full", p.FrontMatter.Title)
	assert.True(t, p.FrontMatter.Hidden)
	assert.Contains(t, p.Body, "Includes all examples.")
	assert.NotContains(t, p.Body, "<Spoiler")
	assert.NotContains(t, p.Body, "<CodeHeader>")
	assert.Equal(t, 2, strings.Count(p.Body, "```json"))
	assert.Contains(t, p.Body, "apple\n\n")
	assert.Contains(t, p.Body, "bread\n\n")
}

func TestVanillaUsageEntitiesNeedBothLimitsForFull(t *testing.T) {
	comps := pack.Components{"minecraft:health": {usage("minecraft:cow", "", `{}`)}}
	p, err := VanillaUsage(Entities, "vuc.md", comps, Limits{PerComponent: -1, PerOwner: 3}, stamp)
	require.NoError(t, err)
	assert.False(t, p.FrontMatter.Hidden)
	assert.Contains(t, p.Body, "<Spoiler")
}

func TestVanillaUsageSortsComponents(t *testing.T) {
	comps := pack.Components{
		"minecraft:weight":            {usage("zombie", "", `{"default": 100}`)},
		"minecraft:spawns_on_surface": {usage("zombie", "", `{}`)},
	}
	p, err := VanillaUsage(SpawnRules, "vusr.md", comps, Limits{PerComponent: 8, PerOwner: 3}, stamp)
	require.NoError(t, err)
	assert.Equal(t, "Vanilla Usage Spawn Rules", p.FrontMatter.Title)
	assert.Less(t, strings.Index(p.Body, "## spawns_on_surface"), strings.Index(p.Body, "## weight"))
	assert.Contains(t, p.Body, "Note that not more than 8 examples are shown")
}

func TestVanillaUsageRejectsBadData(t *testing.T) {
	comps := pack.Components{"minecraft:x": {usage("a", "", `{bad`)}}
	_, err := VanillaUsage(Items, "vui.md", comps, Limits{PerComponent: 8, PerOwner: 3}, stamp)
	assert.Error(t, err)
}

func TestVanillaUsageUnknownKind(t *testing.T) {
	_, err := VanillaUsage(UsageKind(42), "x.md", pack.Components{}, Limits{}, stamp)
	assert.Error(t, err)
}

// Package content turns pack data into wiki fragments and pages.
package content

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bedrock-oss/wikigen/internal/pack"
	"github.com/bedrock-oss/wikigen/internal/splice"
	"github.com/bedrock-oss/wikigen/internal/table"
)

// BlockSounds lists every value of "sound" in blocks.json as a one-column
// table headed by the stamp.
func BlockSounds(blocks *pack.Blocks, stamp string) (splice.Fragment, error) {
	column := append([]string{stamp}, blocks.Sounds...)
	lines, err := table.Render(0, column)
	if err != nil {
		return splice.Fragment{}, fmt.Errorf("block sounds: %w", err)
	}
	return splice.Lines(lines...), nil
}

// CanPlaceOnEverything builds the give command whose item may be placed on every block.
func CanPlaceOnEverything(blocks *pack.Blocks, stamp string) (splice.Fragment, error) {
	quoted := make([]string, len(blocks.IDs))
	for i, id := range blocks.IDs {
		b, err := json.Marshal(id)
		if err != nil {
			return splice.Fragment{}, err
		}
		quoted[i] = string(b)
	}
	command := `give @p stone 1 0 {"minecraft:can_place_on": {"blocks": [` + strings.Join(quoted, ", ") + `]}}`

	var sb strings.Builder
	sb.WriteString("<CodeHeader></CodeHeader>\n\n")
	sb.WriteString("```json\n")
	sb.WriteString(command)
	sb.WriteString("\n```\n\n")
	sb.WriteString(stamp)
	return splice.Scalar(sb.String()), nil
}

// CreativeCategories renders the creative category table followed by the stamp.
func CreativeCategories(categories []string, stamp string) (splice.Fragment, error) {
	column := append([]string{"Creative Categories:"}, categories...)
	lines, err := table.Render(0, column)
	if err != nil {
		return splice.Fragment{}, fmt.Errorf("creative categories: %w", err)
	}
	lines = append(lines, "", stamp)
	return splice.Lines(lines...), nil
}

// FogIDs renders fog identifiers and the biomes using them, sorted by identifier.
func FogIDs(fogs []pack.Fog, stamp string) (splice.Fragment, error) {
	ids := []string{"ID"}
	biomes := []string{"Biome used in"}
	for _, f := range fogs {
		ids = append(ids, f.ID)
		biomes = append(biomes, f.Biome)
	}
	lines, err := table.Render(0, ids, biomes)
	if err != nil {
		return splice.Fragment{}, fmt.Errorf("fog ids: %w", err)
	}
	lines = append(lines, stamp)
	return splice.Lines(lines...), nil
}

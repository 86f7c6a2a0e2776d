// Package pack reads the vanilla resource and behavior pack definitions
// used to generate wiki content.
package pack

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bedrock-oss/wikigen/internal/jsonc"
)

// Version is the engine version of a pack, e.g. [1 20 0].
type Version []int

func (v Version) String() string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Stamp renders the italic line appended to content generated from packs.
func Stamp(v Version, preview bool) string {
	if preview {
		return fmt.Sprintf("*Last updated for %s (preview)*", v)
	}
	return fmt.Sprintf("*Last updated for %s*", v)
}

// CustomStamp renders the italic line appended to content generated from custom data.
func CustomStamp(now time.Time) string {
	return fmt.Sprintf("*Last updated on %s*", now.Format("02 January 2006"))
}

type manifest struct {
	Header struct {
		MinEngineVersion json.RawMessage `json:"min_engine_version"`
	} `json:"header"`
}

// ReadVersion returns header.min_engine_version from the pack manifest.
func ReadVersion(dir string) (Version, error) {
	var m manifest
	if err := jsonc.ReadFile(filepath.Join(dir, "manifest.json"), &m); err != nil {
		return nil, err
	}
	raw := m.Header.MinEngineVersion
	if len(raw) == 0 {
		return nil, fmt.Errorf("manifest in %s has no header.min_engine_version", dir)
	}
	var v Version
	if err := json.Unmarshal(raw, &v); err == nil {
		return v, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("unsupported min_engine_version %s", raw)
	}
	for _, part := range strings.Split(s, ".") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("unsupported min_engine_version %q", s)
		}
		v = append(v, n)
	}
	return v, nil
}

// Blocks holds what the wiki needs from blocks.json.
type Blocks struct {
	// IDs lists block identifiers in file order.
	IDs []string
	// Sounds lists the distinct sound values, sorted.
	Sounds []string
}

// ReadBlocks parses blocks.json of a resource pack.
func ReadBlocks(dir string) (*Blocks, error) {
	var obj jsonc.Object
	if err := jsonc.ReadFile(filepath.Join(dir, "blocks.json"), &obj); err != nil {
		return nil, err
	}
	blocks := &Blocks{}
	seen := map[string]bool{}
	for _, m := range obj {
		if m.Key == "format_version" {
			continue
		}
		blocks.IDs = append(blocks.IDs, m.Key)
		var def struct {
			Sound string `json:"sound"`
		}
		if err := json.Unmarshal(m.Value, &def); err != nil {
			return nil, fmt.Errorf("block %s: %w", m.Key, err)
		}
		if def.Sound != "" && !seen[def.Sound] {
			seen[def.Sound] = true
			blocks.Sounds = append(blocks.Sounds, def.Sound)
		}
	}
	sort.Strings(blocks.Sounds)
	return blocks, nil
}

const creativeCategoryKey = "itemGroup.name."

// ReadCreativeCategories returns the itemGroup.name.* keys of texts/en_US.lang in file order.
func ReadCreativeCategories(dir string) ([]string, error) {
	path := filepath.Join(dir, "texts", "en_US.lang")
	// #nosec G304 -- pack paths come from the job configuration
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var categories []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, creativeCategoryKey) {
			continue
		}
		key, _, _ := strings.Cut(line, "=")
		categories = append(categories, strings.TrimSpace(strings.TrimPrefix(key, "\ufeff")))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return categories, nil
}

// Fog binds a client biome to its fog identifier.
type Fog struct {
	Biome string
	ID    string
}

// ReadFogs returns the fog identifier of every biome in biomes_client.json,
// in file order. Biomes without a fog identifier are skipped.
func ReadFogs(dir string) ([]Fog, error) {
	var file struct {
		Biomes jsonc.Object `json:"biomes"`
	}
	if err := jsonc.ReadFile(filepath.Join(dir, "biomes_client.json"), &file); err != nil {
		return nil, err
	}
	fogs := make([]Fog, 0, len(file.Biomes))
	for _, m := range file.Biomes {
		var def struct {
			FogIdentifier string `json:"fog_identifier"`
		}
		if err := json.Unmarshal(m.Value, &def); err != nil {
			return nil, fmt.Errorf("biome %s: %w", m.Key, err)
		}
		if def.FogIdentifier == "" {
			continue
		}
		fogs = append(fogs, Fog{Biome: m.Key, ID: def.FogIdentifier})
	}
	return fogs, nil
}

// Sound is one entry of sound_definitions.json.
type Sound struct {
	Name     string
	Category string
}

// ReadSoundDefinitions returns every sound definition in file order.
func ReadSoundDefinitions(dir string) ([]Sound, error) {
	var file struct {
		Definitions jsonc.Object `json:"sound_definitions"`
	}
	if err := jsonc.ReadFile(filepath.Join(dir, "sounds", "sound_definitions.json"), &file); err != nil {
		return nil, err
	}
	sounds := make([]Sound, 0, len(file.Definitions))
	for _, m := range file.Definitions {
		var def struct {
			Category string `json:"category"`
		}
		if err := json.Unmarshal(m.Value, &def); err != nil {
			return nil, fmt.Errorf("sound %s: %w", m.Key, err)
		}
		sounds = append(sounds, Sound{Name: m.Key, Category: def.Category})
	}
	return sounds, nil
}

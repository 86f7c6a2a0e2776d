package pack

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bedrock-oss/wikigen/internal/jsonc"
)

// Usage is one occurrence of a component in a vanilla definition.
type Usage struct {
	// Owner is the identifier of the entity, item or spawn rule using the component.
	Owner string
	// Group names the entity component group, empty for top-level components.
	Group string
	Data  json.RawMessage
}

// Components maps a component name to its usages in load order.
type Components map[string][]Usage

// Names returns the component names sorted.
func (c Components) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c Components) add(name string, u Usage) {
	c[name] = append(c[name], u)
}

// loadDir decodes every *.json file of dir concurrently. Results are
// returned in file name order regardless of completion order.
func loadDir[T any](ctx context.Context, dir string, decode func(name string, data []byte) (T, error)) ([]T, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	results := make([]T, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// #nosec G304 -- pack paths come from the job configuration
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				return err
			}
			std, err := jsonc.Standardize(data)
			if err != nil {
				return fmt.Errorf("failed to decode %s: %w", filepath.Join(dir, name), err)
			}
			v, err := decode(name, std)
			if err != nil {
				return fmt.Errorf("failed to decode %s: %w", filepath.Join(dir, name), err)
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

type description struct {
	Identifier string `json:"identifier"`
}

type spawnRulesFile struct {
	SpawnRules *struct {
		Description description    `json:"description"`
		Conditions []jsonc.Object `json:"conditions"`
	} `json:"minecraft:spawn_rules"`
}

// ReadSpawnRules collects the components of every spawn rule condition in
// the behavior pack. Owners have the minecraft namespace removed.
func ReadSpawnRules(ctx context.Context, dir string) (Components, error) {
	files, err := loadDir(ctx, filepath.Join(dir, "spawn_rules"), func(_ string, data []byte) (spawnRulesFile, error) {
		var f spawnRulesFile
		err := json.Unmarshal(data, &f)
		return f, err
	})
	if err != nil {
		return nil, err
	}
	out := Components{}
	for _, f := range files {
		if f.SpawnRules == nil {
			continue
		}
		owner := strings.TrimPrefix(f.SpawnRules.Description.Identifier, "minecraft:")
		for _, condition := range f.SpawnRules.Conditions {
			for _, m := range condition {
				out.add(m.Key, Usage{Owner: owner, Data: m.Value})
			}
		}
	}
	return out, nil
}

type itemFile struct {
	Item *struct {
		Description description  `json:"description"`
		Components  jsonc.Object `json:"components"`
	} `json:"minecraft:item"`
}

// ReadItems collects the components of every item in the behavior pack.
func ReadItems(ctx context.Context, dir string) (Components, error) {
	files, err := loadDir(ctx, filepath.Join(dir, "items"), func(_ string, data []byte) (itemFile, error) {
		var f itemFile
		err := json.Unmarshal(data, &f)
		return f, err
	})
	if err != nil {
		return nil, err
	}
	out := Components{}
	for _, f := range files {
		if f.Item == nil {
			continue
		}
		for _, m := range f.Item.Components {
			out.add(m.Key, Usage{Owner: f.Item.Description.Identifier, Data: m.Value})
		}
	}
	return out, nil
}

type entityFile struct {
	name   string
	Entity *struct {
		Description     description  `json:"description"`
		Components      jsonc.Object `json:"components"`
		ComponentGroups jsonc.Object `json:"component_groups"`
	} `json:"minecraft:entity"`
}

// ReadEntities collects the components of every entity in the behavior
// pack, top-level components first and then each component group in order.
func ReadEntities(ctx context.Context, dir string) (Components, error) {
	files, err := loadDir(ctx, filepath.Join(dir, "entities"), func(name string, data []byte) (entityFile, error) {
		f := entityFile{name: name}
		err := json.Unmarshal(data, &f)
		return f, err
	})
	if err != nil {
		return nil, err
	}
	out := Components{}
	for _, f := range files {
		if f.Entity == nil {
			continue
		}
		owner := f.Entity.Description.Identifier
		if owner == "" {
			owner = "minecraft:" + strings.TrimSuffix(f.name, ".json")
		}
		for _, m := range f.Entity.Components {
			out.add(m.Key, Usage{Owner: owner, Data: m.Value})
		}
		for _, group := range f.Entity.ComponentGroups {
			var components jsonc.Object
			if err := json.Unmarshal(group.Value, &components); err != nil {
				return nil, fmt.Errorf("entity %s group %s: %w", owner, group.Key, err)
			}
			for _, m := range components {
				out.add(m.Key, Usage{Owner: owner, Group: group.Key, Data: m.Value})
			}
		}
	}
	return out, nil
}

// Biome is a custom data biome definition and its tags.
type Biome struct {
	// Name is the file name without the .biome.json suffix.
	Name       string
	Identifier string
	Tags       []string
}

type biomeFile struct {
	Biome *struct {
		Description description  `json:"description"`
		Components  jsonc.Object `json:"components"`
	} `json:"minecraft:biome"`
}

// ReadBiomes reads every biome definition of dir. A tag is a component
// without a namespace whose value is an empty object.
func ReadBiomes(ctx context.Context, dir string) ([]Biome, error) {
	biomes, err := loadDir(ctx, dir, func(name string, data []byte) (Biome, error) {
		var f biomeFile
		if err := json.Unmarshal(data, &f); err != nil {
			return Biome{}, err
		}
		if f.Biome == nil {
			return Biome{}, fmt.Errorf("missing minecraft:biome")
		}
		b := Biome{
			Name:       strings.TrimSuffix(strings.TrimSuffix(name, ".json"), ".biome"),
			Identifier: f.Biome.Description.Identifier,
		}
		for _, m := range f.Biome.Components {
			if !strings.Contains(m.Key, ":") && jsonc.IsEmptyObject(m.Value) {
				b.Tags = append(b.Tags, m.Key)
			}
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return biomes, nil
}

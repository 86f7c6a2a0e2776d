package content

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bedrock-oss/wikigen/internal/pack"
	"github.com/bedrock-oss/wikigen/internal/page"
	"github.com/bedrock-oss/wikigen/internal/table"
)

const (
	credit = "This page was created with [Wiki Content Generator](https://github.com/Bedrock-OSS/bedrock-wiki-content-generator). " +
		"If there are issues, contact us on [Bedrock OSS](https://discord.gg/XjV87YN) Discord server."
	maintainer  = "MedicalJewel105"
	noCategory  = "No category"
	vanillaNS   = "minecraft:"
	docCategory = "Documentation"
	unlimited   = -1
)

// SoundDefinitions lists every sound definition grouped by category, with
// subcategory headings derived from the first dotted segment of the name.
func SoundDefinitions(path string, sounds []pack.Sound, stamp string) *page.Page {
	byCategory := map[string][]string{}
	for _, s := range sounds {
		category := s.Category
		if category == "" {
			category = noCategory
		}
		byCategory[category] = append(byCategory[category], s.Name)
	}
	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		if c != noCategory {
			categories = append(categories, c)
		}
	}
	sort.Strings(categories)
	if _, ok := byCategory[noCategory]; ok {
		categories = append(categories, noCategory)
	}

	var sb strings.Builder
	sb.WriteString("Sounds from `sound_definitions.json` sorted by categories and subcategories based on their names.\n")
	sb.WriteString(credit + "\n")
	sb.WriteString(stamp + "\n\n")
	for _, category := range categories {
		fmt.Fprintf(&sb, "## %s\n\n", category)
		names := append([]string(nil), byCategory[category]...)
		sort.Strings(names)
		previous := ""
		for _, name := range names {
			if sub, _, ok := strings.Cut(name, "."); ok && sub != previous {
				fmt.Fprintf(&sb, "#### %s\n---\n", sub)
				previous = sub
			}
			fmt.Fprintf(&sb, "`%s`\n\n", name)
		}
	}

	return &page.Page{
		Path: path,
		FrontMatter: page.FrontMatter{
			Title:       "Sound Definitions",
			Mentions:    []string{maintainer},
			Description: "Automatically generated sounds from sound_definitions.json sorted by categories and subcategories.",
		},
		Body: sb.String(),
	}
}

// BiomeTags renders a table of tags per biome and a table of biomes per tag.
func BiomeTags(path string, biomes []pack.Biome, stamp string) (*page.Page, error) {
	ids := []string{"Biome"}
	tagLists := []string{"Biome Tags"}
	byTag := map[string][]string{}
	for _, b := range biomes {
		ids = append(ids, b.Identifier)
		tagLists = append(tagLists, strings.Join(b.Tags, ", "))
		for _, tag := range b.Tags {
			byTag[tag] = append(byTag[tag], b.Name)
		}
	}
	perBiome, err := table.Render(0, ids, tagLists)
	if err != nil {
		return nil, fmt.Errorf("biome tags: %w", err)
	}

	tags := []string{"Biome Tag"}
	matching := []string{"Biomes"}
	names := make([]string, 0, len(byTag))
	for tag := range byTag {
		names = append(names, tag)
	}
	sort.Strings(names)
	for _, tag := range names {
		tags = append(tags, tag)
		matching = append(matching, strings.Join(dedupe(byTag[tag]), ", "))
	}
	perTag, err := table.Render(0, tags, matching)
	if err != nil {
		return nil, fmt.Errorf("biome tags: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(credit + "\n")
	sb.WriteString(" " + stamp + "\n\n")
	sb.WriteString("## Biome tag per Biome\n\n")
	for _, line := range perBiome {
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n## Biome per Biome Tag\n\n")
	for _, line := range perTag {
		sb.WriteString(line + "\n")
	}

	return &page.Page{
		Path: path,
		FrontMatter: page.FrontMatter{
			Title:       "Biome Tags",
			Category:    docCategory,
			Mentions:    []string{maintainer},
			Description: "Automatically generated biome tags.",
		},
		Body: sb.String(),
	}, nil
}

func dedupe(values []string) []string {
	seen := map[string]bool{}
	out := values[:0:0]
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

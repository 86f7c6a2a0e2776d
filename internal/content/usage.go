package content

import (
	"fmt"
	"strings"

	"github.com/bedrock-oss/wikigen/internal/jsonc"
	"github.com/bedrock-oss/wikigen/internal/pack"
	"github.com/bedrock-oss/wikigen/internal/page"
)

// UsageKind selects one of the vanilla usage pages.
type UsageKind int

const (
	SpawnRules UsageKind = iota
	Items
	Entities
)

type usageMeta struct {
	title       string
	description string
	fullLink    string
}

var usageMetas = map[UsageKind]usageMeta{
	SpawnRules: {
		title:       "Vanilla Usage Spawn Rules",
		description: "Automatically generated list of spawn rules components used in vanilla.",
		fullLink:    "/entities/vusr-full",
	},
	Items: {
		title:       "Vanilla Usage Items",
		description: "Automatically generated list of item components used in vanilla.",
		fullLink:    "/items/vui-full",
	},
	Entities: {
		title:       "Vanilla Usage Components",
		description: "Automatically generated list of entity components used in vanilla.",
		fullLink:    "/entities/vuc-full",
	},
}

// Limits caps the examples of a vanilla usage page. Use -1 for no cap.
type Limits struct {
	// PerComponent caps the examples listed under one component.
	PerComponent int
	// PerOwner caps the examples taken from one entity. Only entity pages use it.
	PerOwner int
}

func (l Limits) full(kind UsageKind) bool {
	if kind == Entities {
		return l.PerComponent == unlimited && l.PerOwner == unlimited
	}
	return l.PerComponent == unlimited
}

// VanillaUsage renders example usages of every component, grouped by the
// entity, item or spawn rule they come from. A full page drops the spoilers
// and code headers and is hidden from navigation.
func VanillaUsage(kind UsageKind, path string, components pack.Components, limits Limits, stamp string) (*page.Page, error) {
	meta, ok := usageMetas[kind]
	if !ok {
		return nil, fmt.Errorf("unknown usage kind %d", kind)
	}
	full := limits.full(kind)

	var sb strings.Builder
	sb.WriteString(credit + "\n")
	switch {
	case full:
		sb.WriteString("Includes all examples. Namespace `minecraft` and some formatting have been removed to make the page load quickly.")
	case kind == Entities:
		fmt.Fprintf(&sb, "Note that to keep this page fast to load and informative, there are not more than %d example(s) for each component "+
			"and not more than %d example(s) from each entity are shown. Namespace `minecraft` was also removed.\n", limits.PerComponent, limits.PerOwner)
		fmt.Fprintf(&sb, "If you want to see full page, you can do it [here](%s).", meta.fullLink)
	default:
		fmt.Fprintf(&sb, "Note that not more than %d examples are shown for each component to keep this page fast to load. "+
			"Namespace `minecraft` was also removed.\n", limits.PerComponent)
		fmt.Fprintf(&sb, "If you want to see full page, you can do it [here](%s).", meta.fullLink)
	}
	sb.WriteString(" " + stamp + "\n\n")

	for _, name := range components.Names() {
		if err := writeComponent(&sb, kind, name, components[name], limits, full); err != nil {
			return nil, err
		}
	}

	title := meta.title
	if full {
		title += " - Full"
	}
	return &page.Page{
		Path: path,
		FrontMatter: page.FrontMatter{
			Title:       title,
			Category:    docCategory,
			Mentions:    []string{maintainer},
			Description: meta.description,
			Hidden:      full,
		},
		Body: sb.String(),
	}, nil
}

func writeComponent(sb *strings.Builder, kind UsageKind, name string, usages []pack.Usage, limits Limits, full bool) error {
	fmt.Fprintf(sb, "## %s\n\n", strings.TrimPrefix(name, vanillaNS))
	if !full {
		sb.WriteString("<Spoiler title=\"Show\">\n\n")
	}

	shown := 0
	fromOwner := 0
	owner := ""
	for i, u := range usages {
		if i == 0 || u.Owner != owner {
			owner = u.Owner
			fromOwner = 0
			fmt.Fprintf(sb, "%s\n\n", strings.TrimPrefix(owner, vanillaNS))
		} else {
			fromOwner++
		}
		if kind == Entities && !full && limits.PerOwner != unlimited && fromOwner >= limits.PerOwner {
			continue
		}

		body, err := jsonc.Indent(u.Data)
		if err != nil {
			return fmt.Errorf("component %s of %s: %w", name, u.Owner, err)
		}
		if !full {
			if u.Group != "" {
				fmt.Fprintf(sb, "<CodeHeader>#component_groups/%s</CodeHeader>\n\n", u.Group)
			} else {
				sb.WriteString("<CodeHeader></CodeHeader>\n\n")
			}
		}
		sb.WriteString("```json\n")
		fmt.Fprintf(sb, "%q: %s\n", name, body)
		sb.WriteString("```\n\n")

		shown++
		if limits.PerComponent != unlimited && shown == limits.PerComponent {
			break
		}
	}

	if !full {
		sb.WriteString("</Spoiler>\n\n")
	}
	return nil
}

package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bedrock-oss/wikigen/internal/config"
	"github.com/bedrock-oss/wikigen/internal/pack"
	"github.com/bedrock-oss/wikigen/internal/page"
	"github.com/bedrock-oss/wikigen/internal/splice"
)

// Section names a generated part of the wiki.
type Section string

const (
	SectionBlockSounds        Section = "block-sounds"
	SectionNBTCommands        Section = "nbt-commands"
	SectionCreativeCategories Section = "creative-categories"
	SectionFogIDs             Section = "fog-ids"
	SectionSoundDefinitions   Section = "sound-definitions"
	SectionBiomeTags          Section = "biome-tags"
	SectionSpawnRules         Section = "spawn-rules"
	SectionItems              Section = "items"
	SectionEntities           Section = "entities"
)

// Sections lists every section in generation order.
var Sections = []Section{
	SectionBlockSounds,
	SectionNBTCommands,
	SectionCreativeCategories,
	SectionFogIDs,
	SectionSoundDefinitions,
	SectionBiomeTags,
	SectionSpawnRules,
	SectionItems,
	SectionEntities,
}

// ErrUnknownSection indicates a section name that is not generated.
var ErrUnknownSection = errors.New("unknown section")

// ErrPageSkipped marks a section left out because another section bound to
// the same page could not be generated.
var ErrPageSkipped = errors.New("page skipped")

// ParseSections validates section names; an empty list selects every section.
// Repeated names are kept once, at their first position.
func ParseSections(names []string) ([]Section, error) {
	if len(names) == 0 {
		return Sections, nil
	}
	known := make(map[Section]bool, len(Sections))
	for _, s := range Sections {
		known[s] = true
	}
	out := make([]Section, 0, len(names))
	seen := make(map[Section]bool, len(names))
	for _, n := range names {
		s := Section(n)
		if !known[s] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSection, n)
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out, nil
}

// Outcome is the result of generating one section.
type Outcome struct {
	Section Section        `json:"section"`
	Path    string         `json:"path"`
	Changed bool           `json:"changed"`
	Report  *splice.Report `json:"report,omitempty"`
	Err     error          `json:"-"`
}

// Generator extracts pack data and updates the wiki pages.
type Generator struct {
	opts    *config.Options
	jobs    *config.Jobs
	splicer *splice.Splicer
	pages   *page.Writer
	log     *logrus.Entry
	now     func() time.Time

	blocks *pack.Blocks
	stamp  string
}

// NewGenerator constructs a generator for the configured packs and pages.
func NewGenerator(opts *config.Options, jobs *config.Jobs) *Generator {
	markers := splice.Markers{Start: jobs.Markers.Start, End: jobs.Markers.End}
	return &Generator{
		opts:    opts,
		jobs:    jobs,
		splicer: splice.New(opts, markers),
		pages:   page.NewWriter(opts),
		log:     opts.Logger().WithField("component", "generator"),
		now:     time.Now,
	}
}

// Run generates the given sections. Whole pages are written as they are
// built; fragments are collected per page and spliced as one batch at the
// end. A failing section does not stop the others; every failure is
// returned joined. Repeated sections are generated once. A page shared by
// several sections is only spliced when all of them produced a fragment.
func (g *Generator) Run(ctx context.Context, sections []Section) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(sections))
	var jobs []splice.Job
	jobIndex := map[string]int{}
	byPath := map[string][]int{}
	failed := map[string]Section{}
	seen := map[Section]bool{}

	for _, s := range sections {
		if seen[s] {
			continue
		}
		seen[s] = true
		path := g.opts.PagePath(g.pagePath(s))
		if !g.isFragment(s) {
			outcomes = append(outcomes, g.writePage(ctx, s, path))
			continue
		}
		frag, err := g.fragment(s)
		if err != nil {
			if _, ok := failed[path]; !ok {
				failed[path] = s
			}
			outcomes = append(outcomes, Outcome{Section: s, Path: path, Err: fmt.Errorf("%s: %w", s, err)})
			continue
		}
		// Sections sharing a page fill its regions in section order.
		byPath[path] = append(byPath[path], len(outcomes))
		outcomes = append(outcomes, Outcome{Section: s, Path: path})
		if i, ok := jobIndex[path]; ok {
			jobs[i].Fragments = append(jobs[i].Fragments, frag)
			continue
		}
		jobIndex[path] = len(jobs)
		jobs = append(jobs, splice.Job{Name: string(s), Path: path, Fragments: []splice.Fragment{frag}})
	}

	ready := jobs[:0]
	for _, job := range jobs {
		culprit, ok := failed[job.Path]
		if !ok {
			ready = append(ready, job)
			continue
		}
		g.log.WithFields(logrus.Fields{
			"action":  "splice",
			"path":    job.Path,
			"section": culprit,
		}).Warn("Skipping page with a failed section")
		for _, i := range byPath[job.Path] {
			outcomes[i].Err = fmt.Errorf("%s: %w: %s on the same page failed", outcomes[i].Section, ErrPageSkipped, culprit)
		}
	}
	jobs = ready

	if len(jobs) > 0 {
		reports, err := g.splicer.Run(jobs)
		for _, r := range reports {
			for _, i := range byPath[r.Path] {
				outcomes[i].Report = r
				outcomes[i].Changed = r.HasChanges()
			}
		}
		var batch *splice.BatchError
		if errors.As(err, &batch) {
			for _, f := range batch.Failures {
				for _, i := range byPath[f.Path] {
					outcomes[i].Err = fmt.Errorf("%s: %w", outcomes[i].Section, f.Err)
				}
			}
		}
	}

	var errs []error
	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	g.log.WithFields(logrus.Fields{
		"sections": len(sections),
		"failed":   len(errs),
	}).Info("Generation finished")
	return outcomes, errors.Join(errs...)
}

func (g *Generator) isFragment(s Section) bool {
	switch s {
	case SectionBlockSounds, SectionNBTCommands, SectionCreativeCategories, SectionFogIDs:
		return true
	}
	return false
}

func (g *Generator) pagePath(s Section) string {
	p := g.jobs.Pages
	switch s {
	case SectionBlockSounds:
		return p.BlockSounds
	case SectionNBTCommands:
		return p.NBTCommands
	case SectionCreativeCategories:
		return p.CreativeCategories
	case SectionFogIDs:
		return p.FogIDs
	case SectionSoundDefinitions:
		return p.SoundDefinitions
	case SectionBiomeTags:
		return p.BiomeTags
	case SectionSpawnRules:
		return p.SpawnRules
	case SectionItems:
		return p.Items
	case SectionEntities:
		return p.Entities
	}
	return ""
}

func (g *Generator) resourceDir() string { return g.jobs.PackPath(g.jobs.Packs.Resource) }
func (g *Generator) behaviorDir() string { return g.jobs.PackPath(g.jobs.Packs.Behavior) }

// packStamp reads the resource pack version once per generator.
func (g *Generator) packStamp() (string, error) {
	if g.stamp != "" {
		return g.stamp, nil
	}
	v, err := pack.ReadVersion(g.resourceDir())
	if err != nil {
		return "", err
	}
	g.stamp = pack.Stamp(v, g.jobs.Preview())
	return g.stamp, nil
}

func (g *Generator) readBlocks() (*pack.Blocks, error) {
	if g.blocks != nil {
		return g.blocks, nil
	}
	b, err := pack.ReadBlocks(g.resourceDir())
	if err != nil {
		return nil, err
	}
	g.blocks = b
	return b, nil
}

func (g *Generator) fragment(s Section) (splice.Fragment, error) {
	stamp, err := g.packStamp()
	if err != nil {
		return splice.Fragment{}, err
	}
	switch s {
	case SectionBlockSounds:
		blocks, err := g.readBlocks()
		if err != nil {
			return splice.Fragment{}, err
		}
		return BlockSounds(blocks, stamp)
	case SectionNBTCommands:
		blocks, err := g.readBlocks()
		if err != nil {
			return splice.Fragment{}, err
		}
		return CanPlaceOnEverything(blocks, stamp)
	case SectionCreativeCategories:
		categories, err := pack.ReadCreativeCategories(g.resourceDir())
		if err != nil {
			return splice.Fragment{}, err
		}
		return CreativeCategories(categories, stamp)
	case SectionFogIDs:
		fogs, err := pack.ReadFogs(g.resourceDir())
		if err != nil {
			return splice.Fragment{}, err
		}
		return FogIDs(fogs, stamp)
	}
	return splice.Fragment{}, fmt.Errorf("%w: %s", ErrUnknownSection, s)
}

func (g *Generator) writePage(ctx context.Context, s Section, path string) Outcome {
	out := Outcome{Section: s, Path: path}
	p, err := g.buildPage(ctx, s, path)
	if err != nil {
		out.Err = fmt.Errorf("%s: %w", s, err)
		return out
	}
	changed, err := g.pages.Write(p)
	if err != nil {
		out.Err = fmt.Errorf("%s: %w", s, err)
		return out
	}
	out.Changed = changed
	return out
}

func (g *Generator) buildPage(ctx context.Context, s Section, path string) (*page.Page, error) {
	limits := Limits{PerComponent: g.jobs.Limits.Examples, PerOwner: g.jobs.Limits.EntityExamples}
	switch s {
	case SectionBiomeTags:
		biomes, err := pack.ReadBiomes(ctx, g.jobs.PackPath(g.jobs.Packs.Custom+"/biomes"))
		if err != nil {
			return nil, err
		}
		return BiomeTags(path, biomes, pack.CustomStamp(g.now()))
	}

	stamp, err := g.packStamp()
	if err != nil {
		return nil, err
	}
	switch s {
	case SectionSoundDefinitions:
		sounds, err := pack.ReadSoundDefinitions(g.resourceDir())
		if err != nil {
			return nil, err
		}
		return SoundDefinitions(path, sounds, stamp), nil
	case SectionSpawnRules:
		comps, err := pack.ReadSpawnRules(ctx, g.behaviorDir())
		if err != nil {
			return nil, err
		}
		return VanillaUsage(SpawnRules, path, comps, limits, stamp)
	case SectionItems:
		comps, err := pack.ReadItems(ctx, g.behaviorDir())
		if err != nil {
			return nil, err
		}
		return VanillaUsage(Items, path, comps, limits, stamp)
	case SectionEntities:
		comps, err := pack.ReadEntities(ctx, g.behaviorDir())
		if err != nil {
			return nil, err
		}
		return VanillaUsage(Entities, path, comps, limits, stamp)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSection, s)
}

// Package page writes wiki pages that are owned entirely by the generator.
package page

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/bedrock-oss/wikigen/internal/config"
	"github.com/bedrock-oss/wikigen/internal/util"
)

var frontmatterPattern = regexp.MustCompile(`(?s)^---\r?\n(.*?)\r?\n---\r?\n(.*)$`)

// FrontMatter is the YAML header of a wiki page.
type FrontMatter struct {
	Title       string   `yaml:"title" json:"title"`
	Category    string   `yaml:"category,omitempty" json:"category,omitempty"`
	Mentions    []string `yaml:"mentions,omitempty" json:"mentions,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Hidden      bool     `yaml:"hidden,omitempty" json:"hidden,omitempty"`
}

// Page is a generated wiki page.
type Page struct {
	Path        string
	FrontMatter FrontMatter
	Body        string
}

// Parse converts raw markdown into a Page.
func Parse(path string, data []byte) (*Page, error) {
	matches := frontmatterPattern.FindSubmatch(data)
	if len(matches) != 3 {
		return nil, errors.New("invalid wiki page: missing frontmatter")
	}

	var fm FrontMatter
	if err := yaml.Unmarshal(matches[1], &fm); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	return &Page{
		Path:        path,
		FrontMatter: fm,
		Body:        string(bytes.TrimLeft(matches[2], "\r\n")),
	}, nil
}

// Encode serialises the page: front matter, a blank line, then the body.
func (p *Page) Encode() ([]byte, error) {
	fmBytes, err := yaml.Marshal(p.FrontMatter)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fmBytes)
	if !bytes.HasSuffix(fmBytes, []byte("\n")) {
		buf.WriteByte('\n')
	}
	buf.WriteString("---\n\n")
	body := strings.TrimLeft(p.Body, "\n")
	buf.WriteString(body)
	if body != "" && !strings.HasSuffix(body, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// mergeMentions appends the mentions of existing that p does not list yet,
// so contributors credited by hand survive regeneration.
func (p *Page) mergeMentions(existing *Page) {
	seen := make(map[string]bool, len(p.FrontMatter.Mentions))
	for _, m := range p.FrontMatter.Mentions {
		seen[m] = true
	}
	for _, m := range existing.FrontMatter.Mentions {
		if !seen[m] {
			seen[m] = true
			p.FrontMatter.Mentions = append(p.FrontMatter.Mentions, m)
		}
	}
}

// Writer persists generated pages.
type Writer struct {
	opts *config.Options
	log  *logrus.Entry
}

// NewWriter constructs a writer with shared configuration.
func NewWriter(opts *config.Options) *Writer {
	return &Writer{
		opts: opts,
		log:  opts.Logger().WithField("component", "page"),
	}
}

// Write replaces the page on disk and reports whether its content changed.
func (w *Writer) Write(p *Page) (bool, error) {
	// #nosec G304 -- page paths come from the wiki configuration
	old, err := os.ReadFile(p.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to read %s: %w", p.Path, err)
	}
	if err == nil {
		if existing, perr := Parse(p.Path, old); perr == nil {
			p.mergeMentions(existing)
		}
	}

	data, err := p.Encode()
	if err != nil {
		return false, err
	}
	if bytes.Equal(old, data) {
		w.log.WithField("path", p.Path).Info("Page already up to date")
		return false, nil
	}
	if w.opts.DryRun {
		w.log.WithFields(logrus.Fields{
			"action": "write",
			"path":   p.Path,
			"dryRun": true,
		}).Info("Skipping write in dry-run mode")
		return true, nil
	}
	if err := util.WriteFileAtomic(p.Path, data, 0o644); err != nil {
		return false, err
	}
	w.log.WithFields(logrus.Fields{
		"action": "write",
		"path":   p.Path,
		"title":  p.FrontMatter.Title,
	}).Info("Page written")
	return true, nil
}

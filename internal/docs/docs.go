// Package docs holds the user guide shown by `timetrack docs` and the TUI help overlay.
// Each page is a markdown file under content/ named after its topic.
package docs

import (
	"embed"
	"io/fs"
	"slices"
	"strings"
)

//go:embed content/*.md
var content embed.FS

// Page is one guide topic. Title is the text of the page's leading "# " heading.
type Page struct {
	Topic    string `json:"topic"`
	Title    string `json:"title"`
	Markdown string `json:"-"`
}

var pages = loadPages(content)

func loadPages(fsys fs.FS) map[string]Page {
	out := map[string]Page{}
	entries, err := fs.ReadDir(fsys, "content")
	if err != nil {
		return out
	}
	for _, e := range entries {
		topic, ok := strings.CutSuffix(e.Name(), ".md")
		if e.IsDir() || !ok || topic == "" {
			continue
		}
		b, err := fs.ReadFile(fsys, "content/"+e.Name())
		if err != nil {
			continue
		}
		md := string(b)
		out[topic] = Page{Topic: topic, Title: pageTitle(md, topic), Markdown: md}
	}
	return out
}

func pageTitle(md, fallback string) string {
	first, _, _ := strings.Cut(md, "\n")
	if title, ok := strings.CutPrefix(strings.TrimSpace(first), "# "); ok {
		return strings.TrimSpace(title)
	}
	return fallback
}

// Pages lists every page ordered by topic.
func Pages() []Page {
	out := make([]Page, 0, len(pages))
	for _, p := range pages {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Page) int { return strings.Compare(a.Topic, b.Topic) })
	return out
}

func Topics() []string {
	var topics []string
	for _, p := range Pages() {
		topics = append(topics, p.Topic)
	}
	return topics
}

// Get returns the markdown for topic, ignoring case and surrounding space.
func Get(topic string) (string, bool) {
	p, ok := pages[strings.ToLower(strings.TrimSpace(topic))]
	return p.Markdown, ok
}

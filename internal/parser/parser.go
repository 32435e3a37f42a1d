// Package parser extracts candidate facets from Markdown content.
package parser

import (
	"bytes"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starford/gigtags/internal/models"
)

// space matches the unicode.IsSpace set; plain \s is ASCII only.
const space = `\s\v\x{85}\p{Z}`

var tagRe = regexp.MustCompile(`(?:^|[` + space + `])#([^` + space + `#][^` + space + `]*)`)

// frontmatterKeys lists the frontmatter fields holding facet lists.
var frontmatterKeys = map[string]struct{}{"tags": {}, "facets": {}}

// Tag is one facet occurrence in a note.
type Tag struct {
	Name   string
	Source string // models.SourceFrontmatter or models.SourceInline
	Line   int    // 1-based line in the note
}

// Result holds the output of parsing a Markdown file.
type Result struct {
	Body string
	Tags []Tag
}

// Parse extracts frontmatter and inline tags from raw Markdown bytes, in
// order of appearance. Duplicates are kept.
func Parse(data []byte) (*Result, error) {
	fm, body, bodyLine := splitFrontmatter(data)

	var tags []Tag
	if fm != nil {
		tags = append(tags, frontmatterTags(fm)...)
	}
	tags = append(tags, inlineTags(body, bodyLine)...)

	return &Result{Body: body, Tags: tags}, nil
}

// splitFrontmatter separates YAML frontmatter (between leading --- delimiters)
// from the Markdown body. If no frontmatter is found the entire content is body.
// fm is the frontmatter mapping node with lines relative to the note.
func splitFrontmatter(data []byte) (fm *yaml.Node, body string, bodyLine int) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data), 1
	}
	skipped := bytes.Count(data[:len(data)-len(trimmed)], []byte("\n"))

	// Find end delimiter.
	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		// No closing delimiter: treat everything as body.
		return nil, string(data), 1
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	bodyText := strings.TrimLeft(string(afterDelim), "\n\r")

	// Opening delimiter line, YAML lines, closing delimiter line, blank lines.
	bodyLine = skipped + 1 + bytes.Count(yamlBlock, []byte("\n")) + 1 +
		strings.Count(string(afterDelim[:len(afterDelim)-len(bodyText)]), "\n")

	var doc yaml.Node
	if err := yaml.Unmarshal(yamlBlock, &doc); err != nil {
		// Invalid YAML: return body only, no error.
		return nil, string(data), 1
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, bodyText, bodyLine
	}

	// yaml lines are relative to the block, which starts on the delimiter line.
	shiftLines(doc.Content[0], skipped)
	return doc.Content[0], bodyText, bodyLine
}

func shiftLines(n *yaml.Node, by int) {
	n.Line += by
	for _, c := range n.Content {
		shiftLines(c, by)
	}
}

// frontmatterTags collects string items of the tags and facets lists.
func frontmatterTags(fm *yaml.Node) []Tag {
	var out []Tag
	for i := 0; i+1 < len(fm.Content); i += 2 {
		key, val := fm.Content[i], fm.Content[i+1]
		if _, ok := frontmatterKeys[key.Value]; !ok || val.Kind != yaml.SequenceNode {
			continue
		}
		for _, item := range val.Content {
			if item.Kind != yaml.ScalarNode || item.ShortTag() != "!!str" {
				continue
			}
			out = append(out, Tag{Name: item.Value, Source: models.SourceFrontmatter, Line: item.Line})
		}
	}
	return out
}

// inlineTags collects #tags from body lines outside fenced code blocks.
func inlineTags(body string, firstLine int) []Tag {
	var out []Tag
	inFence := false
	for i, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		for _, m := range tagRe.FindAllStringSubmatch(line, -1) {
			out = append(out, Tag{Name: m[1], Source: models.SourceInline, Line: firstLine + i})
		}
	}
	return out
}

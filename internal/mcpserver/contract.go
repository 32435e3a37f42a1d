package mcpserver

// FacetFormatContract describes the facet format that LLM consumers should
// follow when writing tags.
const FacetFormatContract = `# gigtags Facet Format Contract

A facet is a short tag-like label, optionally ending in a date suffix.

## Structure

` + "```" + `text
<prefix>~YYYYMMDD
` + "```" + `

- The date suffix is a literal ` + "`~`" + ` followed by a zero-padded 4-digit year,
  2-digit month and 2-digit day: exactly 9 ASCII characters.
- The prefix is free text and may be empty (` + "`~20220625`" + ` is a facet).

## Rules

1. **No surrounding whitespace.** A facet must not start or end with whitespace.
2. **No leading slash.** A facet must not start with ` + "`/`" + `.
3. **The suffix sticks to the prefix.** ` + "`meeting~20220625`" + ` carries a date suffix;
   ` + "`meeting ~20220625`" + ` is rejected because whitespace precedes the ` + "`~`" + `.
4. **Real dates only.** ` + "`x~20220230`" + ` has a date-like suffix but February 30
   does not exist; linting reports it as ` + "`invalid_date`" + `.
5. The empty string is a valid facet without a suffix.

## Where facets appear in notes

- Frontmatter lists ` + "`tags`" + ` or ` + "`facets`" + `:

` + "```" + `markdown
---
tags:
  - project-x
  - standup~20250120
---
` + "```" + `

- Inline ` + "`#tags`" + ` in the body, e.g. ` + "`#review~20250131`" + `.

## Building facets

Use the ` + "`build_facet`" + ` tool with a prefix and a ` + "`YYYY-MM-DD`" + ` date instead of
concatenating strings by hand.
`

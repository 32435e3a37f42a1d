// Package lint reports malformed facets in the notes of a vault.
package lint

import (
	"fmt"

	"github.com/starford/gigtags/internal/checksum"
	"github.com/starford/gigtags/internal/facet"
	"github.com/starford/gigtags/internal/models"
	"github.com/starford/gigtags/internal/parser"
)

// Check lints the facets of one note. Facets listed in ignore are skipped.
func Check(path string, data []byte, ignore map[string]struct{}) (models.Report, error) {
	report := models.Report{
		Path:     path,
		Checksum: checksum.Sum(data),
		Findings: []models.Finding{},
	}

	res, err := parser.Parse(data)
	if err != nil {
		return report, fmt.Errorf("lint: parse %s: %w", path, err)
	}

	for _, tag := range res.Tags {
		if _, ok := ignore[tag.Name]; ok {
			continue
		}
		report.Facets++
		if f, ok := checkFacet(tag); ok {
			report.Findings = append(report.Findings, f)
		}
	}
	return report, nil
}

func checkFacet(tag parser.Tag) (models.Finding, bool) {
	finding := models.Finding{Facet: tag.Name, Source: tag.Source, Line: tag.Line}

	switch {
	case !facet.IsValid(tag.Name):
		finding.Kind = models.KindInvalidFacet
		finding.Message = "facet has surrounding whitespace or starts with '/'"
	case facet.HasInvalidDateLikeSuffix(tag.Name):
		finding.Kind = models.KindInvalidDateLikeSuffix
		finding.Message = "date suffix is separated from the prefix by whitespace"
	case facet.HasDateLikeSuffix(tag.Name):
		if _, date, _ := facet.SplitDateSuffix(tag.Name); date != nil {
			return finding, false
		}
		finding.Kind = models.KindInvalidDate
		finding.Message = "date suffix is not a calendar date"
	default:
		return finding, false
	}
	return finding, true
}

package report

import "strings"

// SectionSet is a set of normalized (lowercased, trimmed) section titles
// whose content should be retained during anonymization.
type SectionSet map[string]struct{}

// DefaultSectionTitles are the sections extracted from clinical reports when
// no override is configured. Both "impression" and "impressions" wordings are
// included since report templates have drifted between the two.
var DefaultSectionTitles = []string{
	"clinical summary and impression",
	"clinical summary and impressions",
	"mental health assessment",
	"dsm-5 diagnostic summary",
}

// NewSectionSet builds a SectionSet from titles, normalizing each one.
func NewSectionSet(titles ...string) SectionSet {
	set := make(SectionSet, len(titles))
	for _, t := range titles {
		set[normalizeTitle(t)] = struct{}{}
	}
	return set
}

// Contains reports whether the normalized title is in the set.
func (s SectionSet) Contains(title string) bool {
	_, ok := s[normalizeTitle(title)]
	return ok
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// ExtractSections returns the ordered blocks that belong to sections of
// interest. Every heading re-decides retention against the set, regardless of
// its level: a sub-heading whose title is not in the set ends the section it
// appears under. Retained headings are included in the result. The output is
// zero or more disjoint contiguous runs concatenated in document order.
func ExtractSections(doc Document, sections SectionSet) []Block {
	var out []Block
	retaining := false
	for _, block := range doc.Blocks {
		if block.Style.Heading {
			retaining = sections.Contains(block.Text)
		}
		if retaining {
			out = append(out, block)
		}
	}
	return out
}

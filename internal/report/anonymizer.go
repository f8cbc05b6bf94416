package report

import "strings"

// Rule is a single ordered replacement: Target is matched whole-word and
// replaced with Replacement, a "/"-joined list of alternatives.
type Rule struct {
	Target      string
	Replacement string
}

// PronounRules neutralize gendered pronouns. Order is significant: rules run
// in declared order over the same mutable text.
var PronounRules = []Rule{
	{"he", "he/she"},
	{"she", "he/she"},
	{"his", "his/her"},
	{"her", "his/her"},
	{"him", "him/her"},
	{"himself", "himself/herself"},
	{"herself", "himself/herself"},
}

// GenderNounRules neutralize a small fixed list of gendered nouns.
var GenderNounRules = []Rule{
	{"man", "man/woman"},
	{"woman", "man/woman"},
	{"boy", "boy/girl"},
	{"girl", "boy/girl"},
	{"son", "son/daughter"},
	{"daughter", "son/daughter"},
}

const (
	firstNameToken = "[FIRST_NAME]"
	lastNameToken  = "[LAST_NAME]"
)

// Anonymizer redacts patient-identifying text from clinical reports. It is a
// pure computation: safe for concurrent use across documents.
type Anonymizer struct {
	Sections    SectionSet
	Pronouns    []Rule
	GenderNouns []Rule
}

// NewAnonymizer builds an anonymizer over the given section titles with the
// default pronoun and gendered-noun rules.
func NewAnonymizer(sectionTitles []string) *Anonymizer {
	if len(sectionTitles) == 0 {
		sectionTitles = DefaultSectionTitles
	}
	return &Anonymizer{
		Sections:    NewSectionSet(sectionTitles...),
		Pronouns:    PronounRules,
		GenderNouns: GenderNounRules,
	}
}

// Anonymize extracts the sections of interest from a report and redacts the
// patient name, pronouns, and gendered nouns, returning the blocks joined
// with newlines. Returns ErrIdentityNotFound if the report has no "Name: "
// line. An empty result is not an error: it means no section of interest was
// present.
func (a *Anonymizer) Anonymize(doc Document) (string, error) {
	identity, err := ExtractIdentity(doc)
	if err != nil {
		return "", err
	}

	blocks := ExtractSections(doc, a.Sections)
	texts := make([]string, len(blocks))
	for i, block := range blocks {
		texts[i] = a.anonymizeText(block.Text, identity)
	}
	return strings.Join(texts, "\n"), nil
}

// anonymizeText applies name, pronoun, and gendered-noun substitution to one
// block. Names run first so pronoun and noun rules never see them; the rule
// lists run in declared order.
func (a *Anonymizer) anonymizeText(text string, identity Identity) string {
	text = Replace(text, identity.FirstName, firstNameToken, false)
	text = Replace(text, identity.LastName, lastNameToken, false)
	for _, rule := range a.Pronouns {
		text = Replace(text, rule.Target, rule.Replacement, true)
	}
	for _, rule := range a.GenderNouns {
		text = Replace(text, rule.Target, rule.Replacement, true)
	}
	return text
}

package intelligence

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Topic is the outcome of domain gating.
type Topic string

const (
	TopicInDomain    Topic = "in_domain"
	TopicOutOfDomain Topic = "out_of_domain"
)

// Classifier decides whether a question belongs to the knowledge domain.
type Classifier interface {
	Classify(question string) Topic
}

// KeywordClassifier matches questions by case-insensitive substring against
// a fixed keyword set. There is no tokenization and no word-boundary check:
// "cartes" matches "carte" and "escompte" matches "compte".
type KeywordClassifier struct {
	keywords []string
}

// NewKeywordClassifier builds a classifier over keywords. Keywords are
// normalized the same way questions are; blank keywords are dropped.
func NewKeywordClassifier(keywords []string) *KeywordClassifier {
	kws := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		n := normalize(strings.TrimSpace(kw))
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		kws = append(kws, n)
	}
	return &KeywordClassifier{keywords: kws}
}

// Keywords returns a copy of the normalized keyword set.
func (c *KeywordClassifier) Keywords() []string {
	out := make([]string, len(c.keywords))
	copy(out, c.keywords)
	return out
}

func (c *KeywordClassifier) Classify(question string) Topic {
	if c.InDomain(question) {
		return TopicInDomain
	}
	return TopicOutOfDomain
}

// InDomain reports whether at least one keyword occurs in question.
func (c *KeywordClassifier) InDomain(question string) bool {
	q := normalize(question)
	for _, kw := range c.keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// normalize lower-cases s with French casing rules and composes it to NFC so
// that a decomposed "e" + U+0301 matches the precomposed "é" of a keyword.
// A Caser is not safe for concurrent use, hence one per call.
func normalize(s string) string {
	return norm.NFC.String(cases.Lower(language.French).String(s))
}

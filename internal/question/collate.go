package question

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// collatorFor returns a comparison function ordering strings by the locale's
// collation rules, so country lists sort the way speakers of the target
// language expect (e.g. German umlauts). Unparseable language codes fall
// back to English ordering.
func collatorFor(lang string) func(a, b string) int {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return collate.New(tag).CompareString
}

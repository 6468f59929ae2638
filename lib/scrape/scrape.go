// Package scrape holds the token extractors used against pages whose markup
// is not owned by us.
//
// every extractor follows the same contract: given a page body, return the
// token and whether it was found. a missing token is never an error, callers
// decide what an absent value means for them. patterns live next to the
// callers so they can be swapped without touching the request flow.
package scrape

import (
	"bytes"
	"fmt"
	"regexp"

	"gvmass/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

type Extractor interface {
	Extract(body []byte) (string, bool)
}

type ExtractorFunc func(body []byte) (string, bool)

func (f ExtractorFunc) Extract(body []byte) (string, bool) {
	return f(body)
}

// Regex returns the first capture group of the first match of `re`.
func Regex(re *regexp.Regexp) Extractor {
	if re.NumSubexp() < 1 {
		panic(fmt.Sprintf("scrape: pattern %q has no capture group", re.String()))
	}
	return ExtractorFunc(func(body []byte) (string, bool) {
		groups := re.FindSubmatch(body)
		if len(groups) < 2 {
			return "", false
		}
		return string(groups[1]), true
	})
}

// InputValue returns the value attribute of the first <input> with the given name.
func InputValue(name string) Extractor {
	selector := fmt.Sprintf("input[name=%q]", name)
	return ExtractorFunc(func(body []byte) (string, bool) {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			return "", false
		}
		return doc.Find(selector).First().Attr("value")
	})
}

// Script runs `re` over the text of each <script> element and returns the
// first capture group of the first script that matches.
func Script(re *regexp.Regexp) Extractor {
	inner := Regex(re)
	return ExtractorFunc(func(body []byte) (string, bool) {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			return "", false
		}
		for _, text := range htmlutil.ScriptTexts(doc) {
			value, ok := inner.Extract([]byte(text))
			if ok {
				return value, true
			}
		}
		return "", false
	})
}

// FirstOf tries each extractor in order and returns the first hit.
func FirstOf(extractors ...Extractor) Extractor {
	return ExtractorFunc(func(body []byte) (string, bool) {
		for _, e := range extractors {
			value, ok := e.Extract(body)
			if ok {
				return value, true
			}
		}
		return "", false
	})
}

// OrEmpty runs `e` and collapses a miss into the empty string.
func OrEmpty(e Extractor, body []byte) string {
	value, _ := e.Extract(body)
	return value
}

package diki

import "net/url"

const searchURL = "https://www.diki.pl/slownik-angielskiego?q="

// QueryURL is the English-Polish result page for word.
func QueryURL(word string) string {
	return searchURL + url.QueryEscape(word)
}

package duckduckgo

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	// BaseURL is the base URL for DuckDuckGo
	BaseURL = "https://duckduckgo.com"

	// SearchEndpoint is the JSON image search endpoint
	SearchEndpoint = "/i.js"

	// PageSize is the number of results the search endpoint serves per offset step
	PageSize = 100

	// DefaultLocale pins the region of the search results
	DefaultLocale = "nl-nl"
)

// GetTokenPageURL constructs the landing page URL that embeds the vqd token
func GetTokenPageURL(baseURL, query string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("iar", "images")
	params.Set("iaf", "size:Large")
	params.Set("iax", "images")
	params.Set("ia", "images")

	return fmt.Sprintf("%s/?%s", baseURL, params.Encode())
}

// GetSearchURL constructs the JSON search URL for one page offset
func GetSearchURL(baseURL, locale string, session Session, offset int) string {
	if locale == "" {
		locale = DefaultLocale
	}

	params := url.Values{}
	params.Set("q", session.Query)
	params.Set("o", "json")
	params.Set("p", "-1")
	params.Set("s", strconv.Itoa(offset))
	params.Set("u", "bing")
	params.Set("f", "size:Large,,,")
	params.Set("l", locale)
	params.Set("vqd", session.Token)
	params.Set("v7exp", "a")
	params.Set("sltexp", "a")

	return fmt.Sprintf("%s%s?%s", baseURL, SearchEndpoint, params.Encode())
}

package duckduckgo

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	scrapererrors "ddgscraper/pkg/errors"
)

// TokenField is the script variable holding the session token
const TokenField = "vqd"

var (
	headScript  = cascadia.MustCompile("head script")
	fieldAssign = regexp.MustCompile(`(\w+)='(.*?)'`)
)

// ExtractScriptFields parses page and returns every name='value' assignment
// found in the first <script> inside <head>. Later duplicates win.
func ExtractScriptFields(page []byte) (map[string]string, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, scrapererrors.Wrap(scrapererrors.ErrorTypeToken, err, "failed to parse token page")
	}

	script := headScript.MatchFirst(doc)
	if script == nil {
		return nil, scrapererrors.New(scrapererrors.ErrorTypeToken, "no script element in page head")
	}

	fields := make(map[string]string)
	for _, m := range fieldAssign.FindAllStringSubmatch(textContent(script), -1) {
		fields[m[1]] = m[2]
	}
	return fields, nil
}

// ExtractToken returns the vqd token embedded in page
func ExtractToken(page []byte) (string, error) {
	fields, err := ExtractScriptFields(page)
	if err != nil {
		return "", err
	}

	token, ok := fields[TokenField]
	if !ok {
		return "", scrapererrors.New(scrapererrors.ErrorTypeToken, "field vqd not found in page script")
	}
	return token, nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

package parser

import (
	"regexp"
	"sort"
	"strings"
)

var (
	inlineLinkRe = regexp.MustCompile(`\[.*?\]\((.*?)\)`)
	bareURLRe    = regexp.MustCompile(`https?://[^\s)]+`)
)

type linkMatch struct {
	pos int
	url string
}

// ExtractLinks returns the targets of inline [text](target) links and any
// bare http(s) URLs in s, in order of position. A bare URL that sits inside
// a link target is not reported twice. Empty targets are skipped.
func ExtractLinks(s string) []string {
	var matches []linkMatch
	var targets [][2]int

	for _, m := range inlineLinkRe.FindAllStringSubmatchIndex(s, -1) {
		targets = append(targets, [2]int{m[2], m[3]})
		url := strings.TrimSpace(s[m[2]:m[3]])
		if url == "" {
			continue
		}
		matches = append(matches, linkMatch{pos: m[0], url: url})
	}

	for _, m := range bareURLRe.FindAllStringIndex(s, -1) {
		if within(targets, m[0]) {
			continue
		}
		matches = append(matches, linkMatch{pos: m[0], url: s[m[0]:m[1]]})
	}

	if len(matches) == 0 {
		return nil
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })

	urls := make([]string, len(matches))
	for i, m := range matches {
		urls[i] = m.url
	}
	return urls
}

func within(spans [][2]int, pos int) bool {
	for _, sp := range spans {
		if pos >= sp[0] && pos < sp[1] {
			return true
		}
	}
	return false
}

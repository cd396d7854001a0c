package issues

import (
	"regexp"
	"strings"
)

var (
	linkEntry = regexp.MustCompile(`<[^>]*>([^<]*)`)
	linkParam = regexp.MustCompile(`(\w+)="([^"]*)"`)
)

// ParseLinkCursors extracts the next and previous cursors from a paginated
// Link header:
//
//	<...?cursor=0:0:1>; rel="previous"; results="false"; cursor="0:0:1",
//	<...?cursor=0:5:0>; rel="next"; results="true"; cursor="0:5:0"
//
// A cursor is only returned when its entry reports results="true".
func ParseLinkCursors(header string) (next, previous string) {
	for _, m := range linkEntry.FindAllStringSubmatch(header, -1) {
		params := map[string]string{}
		for _, p := range linkParam.FindAllStringSubmatch(m[1], -1) {
			params[strings.ToLower(p[1])] = p[2]
		}
		if params["results"] != "true" {
			continue
		}
		switch params["rel"] {
		case "next":
			next = params["cursor"]
		case "previous":
			previous = params["cursor"]
		}
	}
	return next, previous
}

package session

import (
	"net/url"
	"strings"
)

// ParseFragmentToken extracts the access_token delivered by the implicit
// OAuth grant in a redirect URL fragment, e.g.
// "https://app/callback#access_token=ya29...&token_type=Bearer".
// It also accepts a bare fragment string. The redirect flow itself happens
// in the desktop shell; this is only the landing adapter.
func ParseFragmentToken(raw string) (string, bool) {
	frag := raw
	if u, err := url.Parse(raw); err == nil && u.Fragment != "" {
		frag = u.Fragment
	}
	frag = strings.TrimPrefix(frag, "#")

	vals, err := url.ParseQuery(frag)
	if err != nil {
		return "", false
	}
	tok := vals.Get("access_token")
	if tok == "" {
		return "", false
	}
	return tok, true
}

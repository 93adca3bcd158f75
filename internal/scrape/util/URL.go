package util

import (
	"net/url"
	"strings"
)

// AbsURL resolves href against base. Absolute hrefs come back unchanged;
// an unparsable href is returned as-is.
func AbsURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if ref.IsAbs() {
		return ref.String()
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}

// WithQuery appends params to raw, keeping any query it already has.
func WithQuery(raw string, params url.Values) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw + "?" + params.Encode()
	}
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// JoinPath appends a path segment to a URL, keeping exactly one slash
// between them and a trailing slash.
func JoinPath(raw, seg string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return strings.TrimRight(raw, "/") + "/" + strings.Trim(seg, "/") + "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.Trim(seg, "/") + "/"
	return u.String()
}

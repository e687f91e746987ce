// Package params encodes query strings with insertion order preserved.
// url.Values sorts keys on Encode, but the upstream flight-search API and
// the navigable view URLs keep the order the original callers emit, so the
// pairs are kept in a slice instead.
package params

import (
	"net/url"
	"strings"
)

type Pair struct {
	Key   string
	Value string
}

type Params []Pair

func (p Params) Add(key, value string) Params {
	return append(p, Pair{Key: key, Value: value})
}

func (p Params) Encode() string {
	var b strings.Builder
	for i, pair := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(pair.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(pair.Value))
	}
	return b.String()
}

package querycache

import (
	"sort"
	"strings"
)

// Key addresses one cached dataset: a logical query name plus its
// parameters. Scope-dependent queries embed the active scope id as a
// parameter, so keys for different scopes are distinct by construction
// and are never coalesced into one in-flight fetch.
type Key struct {
	Query  string
	Params map[string]string
}

func NewKey(query string, params map[string]string) Key {
	copied := make(map[string]string, len(params))
	for k, v := range params {
		copied[k] = v
	}
	return Key{Query: query, Params: copied}
}

// String renders the canonical form of the key. Parameters are sorted
// by name so that equal keys always render identically.
func (k Key) String() string {
	if len(k.Params) == 0 {
		return k.Query
	}

	names := make([]string, 0, len(k.Params))
	for name := range k.Params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(k.Query)
	b.WriteByte('?')
	for i, name := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(k.Params[name])
	}
	return b.String()
}

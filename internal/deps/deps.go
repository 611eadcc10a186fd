// Package deps maps well-known library repositories to nginx configure flags.
package deps

import "strings"

// Rule binds a URL substring to the configure option that points the build
// at a library source tree.
type Rule struct {
	Pattern string // case-sensitive substring of the repository URL
	Option  string // e.g. "--with-pcre"
}

// Flag renders the configure flag for a library checked out at dir.
func (r Rule) Flag(dir string) string {
	return r.Option + "=" + dir
}

// DefaultRules are the libraries nginx can build from source.
// Order matters: the first matching rule wins.
var DefaultRules = []Rule{
	{Pattern: "pcre", Option: "--with-pcre"},
	{Pattern: "zlib", Option: "--with-zlib"},
	{Pattern: "libatomic", Option: "--with-libatomic"},
	{Pattern: "openssl", Option: "--with-openssl"},
}

// Classifier evaluates an ordered rule list.
type Classifier struct {
	rules []Rule
}

// New creates a Classifier over rules. With no rules it uses DefaultRules.
func New(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Classifier{rules: rules}
}

// Match returns the first rule whose pattern occurs in url.
func (c *Classifier) Match(url string) (Rule, bool) {
	for _, r := range c.rules {
		if strings.Contains(url, r.Pattern) {
			return r, true
		}
	}
	return Rule{}, false
}

// Classify returns the configure flag for the library at url checked out in
// dir. ok is false when url is not a known library.
func (c *Classifier) Classify(url, dir string) (flag string, ok bool) {
	r, ok := c.Match(url)
	if !ok {
		return "", false
	}
	return r.Flag(dir), true
}

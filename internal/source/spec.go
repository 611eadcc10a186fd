// Package source decodes source specifications and names their workspace
// directories.
package source

import "strings"

// DefaultRef is checked out when a specification names no ref.
const DefaultRef = "master"

// Spec is one decoded source specification.
//
// Text form: url["@"ref[","subdir]]
type Spec struct {
	URL    string // repository location, never contains '@' or ','
	Ref    string // branch, tag or version; DefaultRef when absent
	Subdir string // configure subdirectory inside the clone, optional
}

// Parse decodes text into a Spec. It never fails: a missing '@' or ','
// just means the defaults apply. The URL is not validated; a bad one
// surfaces later as a clone failure.
func Parse(text string) Spec {
	url, rest, _ := strings.Cut(text, "@")
	ref, subdir, _ := strings.Cut(rest, ",")
	if ref == "" {
		ref = DefaultRef
	}
	return Spec{URL: url, Ref: ref, Subdir: subdir}
}

// ParseAll decodes each element of texts, preserving order.
func ParseAll(texts []string) []Spec {
	specs := make([]Spec, 0, len(texts))
	for _, text := range texts {
		specs = append(specs, Parse(text))
	}
	return specs
}

// String returns the canonical text form of s.
func (s Spec) String() string {
	var b strings.Builder
	b.WriteString(s.URL)
	b.WriteByte('@')
	b.WriteString(s.Ref)
	if s.Subdir != "" {
		b.WriteByte(',')
		b.WriteString(s.Subdir)
	}
	return b.String()
}

// DirName returns the workspace directory name for s.
func (s Spec) DirName() string {
	return DirName(s.URL, s.Ref)
}

package source

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		text string
		want Spec
	}{
		{"https://example.com/nginx.git@release-1.12.1", Spec{"https://example.com/nginx.git", "release-1.12.1", ""}},
		{"https://example.com/naxsi.git@0.55.3,naxsi_src", Spec{"https://example.com/naxsi.git", "0.55.3", "naxsi_src"}},
		{"https://example.com/naxsi.git@0.55.3,naxsi_src/", Spec{"https://example.com/naxsi.git", "0.55.3", "naxsi_src/"}},
		{"https://example.com/pcre.git", Spec{"https://example.com/pcre.git", "master", ""}},
		{"https://example.com/pcre.git@", Spec{"https://example.com/pcre.git", "master", ""}},
		{"https://example.com/mod.git@,src", Spec{"https://example.com/mod.git", "master", "src"}},
		{"https://example.com/mod.git@v1,a,b", Spec{"https://example.com/mod.git", "v1", "a,b"}},
		{"https://example.com/mod.git@v1@v2", Spec{"https://example.com/mod.git", "v1@v2", ""}},
		{"no-at,comma", Spec{"no-at,comma", "master", ""}},
		{"", Spec{"", "master", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Parse(tt.text); got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseSplitsOnFirstDelimiters(t *testing.T) {
	for _, tt := range []struct{ url, ref, subdir string }{
		{"https://example.com/a.git", "v1.0", "src"},
		{"/local/path/repo", "feature/x", "deep/nested/dir"},
		{"file:///tmp/repo.git", "1.2.3", "with,comma"},
	} {
		text := tt.url + "@" + tt.ref + "," + tt.subdir
		got := Parse(text)
		if got.URL != tt.url || got.Ref != tt.ref || got.Subdir != tt.subdir {
			t.Errorf("Parse(%q) = %+v, want {%s %s %s}", text, got, tt.url, tt.ref, tt.subdir)
		}
		if s := got.String(); s != text {
			t.Errorf("String() = %q, want %q", s, text)
		}
	}
}

func TestParseAll(t *testing.T) {
	specs := ParseAll([]string{"a.git@1", "b.git", "c.git@2,sub"})
	if len(specs) != 3 {
		t.Fatalf("len = %d, want 3", len(specs))
	}
	want := []string{"a.git@1", "b.git@master", "c.git@2,sub"}
	for i, s := range specs {
		if s.String() != want[i] {
			t.Errorf("specs[%d] = %q, want %q", i, s.String(), want[i])
		}
	}
}

package deps

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	c := New()
	tests := []struct {
		url    string
		dir    string
		want   string
		wantOK bool
	}{
		{"https://github.com/PCRE2Project/pcre2.git", "/ws/pcre2-master", "--with-pcre=/ws/pcre2-master", true},
		{"https://example.com/pcre.git", "pcre-master", "--with-pcre=pcre-master", true},
		{"https://github.com/madler/zlib.git", "/ws/zlib-v1.3", "--with-zlib=/ws/zlib-v1.3", true},
		{"https://github.com/ivmai/libatomic_ops.git", "/ws/libatomic_ops-v7.8.0", "--with-libatomic=/ws/libatomic_ops-v7.8.0", true},
		{"https://github.com/openssl/openssl.git", "/ws/openssl-OpenSSL_1_1_1w", "--with-openssl=/ws/openssl-OpenSSL_1_1_1w", true},
		{"https://github.com/nbs-system/naxsi.git", "/ws/naxsi-0.55.3", "", false},
		{"https://example.com/PCRE.git", "/ws/PCRE-master", "", false},
		{"https://example.com/OpenSSL.git", "/ws/OpenSSL-master", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := c.Classify(tt.url, tt.dir)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Classify(%q) = (%q, %v), want (%q, %v)", tt.url, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestClassifyNoCrossTalk(t *testing.T) {
	c := New()
	flag, ok := c.Classify("https://example.com/pcre.git", "d")
	if !ok {
		t.Fatal("pcre not classified")
	}
	for _, other := range []string{"--with-zlib", "--with-libatomic", "--with-openssl"} {
		if strings.HasPrefix(flag, other) {
			t.Errorf("pcre URL produced %q", flag)
		}
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	url := "https://example.com/zlib-with-openssl.git"
	if got, _ := New().Classify(url, "d"); got != "--with-zlib=d" {
		t.Errorf("default order: got %q, want %q", got, "--with-zlib=d")
	}

	c := New(
		Rule{Pattern: "openssl", Option: "--with-openssl"},
		Rule{Pattern: "zlib", Option: "--with-zlib"},
	)
	if got, _ := c.Classify(url, "d"); got != "--with-openssl=d" {
		t.Errorf("custom order: got %q, want %q", got, "--with-openssl=d")
	}
}

func TestMatch(t *testing.T) {
	r, ok := New().Match("https://example.com/libatomic_ops")
	if !ok || r.Option != "--with-libatomic" {
		t.Errorf("Match = (%+v, %v)", r, ok)
	}
	if _, ok := New().Match("https://example.com/nginx.git"); ok {
		t.Error("nginx should not match a library rule")
	}
}

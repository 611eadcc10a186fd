package source

import "strings"

// DirName derives the workspace-relative directory for a repository at ref:
// the last path segment of url, minus a trailing ".git", then "-" and ref.
//
//	DirName("https://github.com/nginx/nginx.git", "release-1.12.1") == "nginx-release-1.12.1"
//
// Two specs with the same basename and ref share a directory.
func DirName(url, ref string) string {
	return baseName(url) + "-" + ref
}

// baseName returns the final segment of url. Both '/' and the ':' of
// scp-style remotes (host:repo.git) separate segments.
func baseName(url string) string {
	url = strings.TrimRight(url, "/")
	if i := strings.LastIndexAny(url, "/:"); i >= 0 {
		url = url[i+1:]
	}
	return strings.TrimSuffix(url, ".git")
}

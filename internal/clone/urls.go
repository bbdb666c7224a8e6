package clone

import (
	"strings"

	"github.com/orgbuild-labs/orgbuild/internal/github"
)

// CloneURLs returns the remote URLs to try for repo, most specific first,
// with empties and duplicates removed. Repositories without API metadata
// also get the bare https and ssh forms.
func CloneURLs(org string, repo github.Repo) []string {
	base := "https://github.com/" + org + "/" + repo.Name
	candidates := []string{
		repo.CloneURL,
		base + ".git",
		repo.SSHURL,
	}
	if repo.HTMLURL != "" {
		candidates = append(candidates, strings.TrimSuffix(repo.HTMLURL, "/")+".git")
	}
	if !hasMetadata(repo) {
		candidates = append(candidates, base, "git@github.com:"+org+"/"+repo.Name+".git")
	}

	seen := make(map[string]bool, len(candidates))
	urls := make([]string, 0, len(candidates))
	for _, u := range candidates {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	return urls
}

func hasMetadata(r github.Repo) bool {
	return r.SSHURL != "" || r.HTMLURL != "" || r.GitURL != ""
}

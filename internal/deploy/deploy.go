// Package deploy seeds freshly cloned repositories with deployment
// configuration copied from a template directory.
package deploy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/orgbuild-labs/orgbuild/internal/detect"
)

const workflowFile = ".github/workflows/deploy.yml"

var (
	webFiles   = []string{workflowFile, "vercel.json", "netlify.toml", "lighthouse.json"}
	htmlExtra  = []string{"package.json", ".gitignore", ".eslintrc.json", ".prettierrc"}
	basicFiles = []string{".gitignore", workflowFile}
)

// FilesFor returns the template files a project of type t receives.
func FilesFor(t detect.Type) []string {
	switch {
	case t == detect.HTML:
		return append(append([]string{}, webFiles...), htmlExtra...)
	case t.IsNodeFamily():
		return append([]string{}, webFiles...)
	default:
		return append([]string{}, basicFiles...)
	}
}

// Seeder copies deployment files from Template into repositories.
type Seeder struct {
	Template string
	Org      string
	Logger   *zap.Logger
}

// Result lists what happened to each template file.
type Result struct {
	Repo    string
	Type    detect.Type
	Copied  []string
	Kept    []string // already present in the repository
	Missing []string // not in the template
	Errors  []string
}

// Seed classifies dir and copies the matching template files into it.
// Files the repository already has are left untouched.
func (s *Seeder) Seed(dir string) (*Result, error) {
	log := s.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if info, err := os.Stat(s.Template); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("template directory %s not found", s.Template)
	}

	name := filepath.Base(dir)
	t, err := detect.Detect(dir)
	if err != nil {
		return nil, fmt.Errorf("detecting %s: %w", name, err)
	}
	res := &Result{Repo: name, Type: t}

	for _, rel := range FilesFor(t) {
		src := filepath.Join(s.Template, filepath.FromSlash(rel))
		dst := filepath.Join(dir, filepath.FromSlash(rel))

		if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
			res.Missing = append(res.Missing, rel)
			continue
		}
		if _, err := os.Stat(dst); err == nil {
			res.Kept = append(res.Kept, rel)
			continue
		}
		if err := s.copyFile(src, dst, rel, name, log); err != nil {
			res.Errors = append(res.Errors, err.Error())
			log.Warn("failed to copy deployment file", zap.String("repo", name), zap.String("file", rel), zap.Error(err))
			continue
		}
		res.Copied = append(res.Copied, rel)
	}
	log.Info("deployment config seeded", zap.String("repo", name), zap.String("type", string(t)),
		zap.Int("copied", len(res.Copied)))
	return res, nil
}

func (s *Seeder) copyFile(src, dst, rel, repo string, log *zap.Logger) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", rel, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", rel, err)
	}

	var out []byte
	switch rel {
	case "package.json":
		out, err = CustomizePackageJSON(data, s.Org, repo)
	case "vercel.json":
		out, err = CustomizeVercelJSON(data, repo)
	}
	if err != nil || out == nil {
		if err != nil {
			log.Warn("customization failed, copying verbatim", zap.String("file", rel), zap.Error(err))
		}
		out = data
	}

	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", rel, err)
	}
	return os.WriteFile(dst, out, info.Mode().Perm())
}

// Slug is the deployment name for repo: lowercase, underscores as dashes.
func Slug(repo string) string {
	return strings.ReplaceAll(strings.ToLower(repo), "_", "-")
}

// CustomizePackageJSON rewrites the identity fields of a template package.json.
func CustomizePackageJSON(data []byte, org, repo string) ([]byte, error) {
	var pkg map[string]any
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parsing package.json: %w", err)
	}
	pkg["name"] = Slug(repo)
	pkg["description"] = fmt.Sprintf("%s - %s", org, repo)
	setURL(pkg, "repository", fmt.Sprintf("https://github.com/%s/%s.git", org, repo))
	setURL(pkg, "bugs", fmt.Sprintf("https://github.com/%s/%s/issues", org, repo))
	pkg["homepage"] = fmt.Sprintf("https://%s.vercel.app", strings.ToLower(repo))
	return marshal(pkg)
}

// CustomizeVercelJSON sets the project name of a template vercel.json.
func CustomizeVercelJSON(data []byte, repo string) ([]byte, error) {
	var cfg map[string]any
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing vercel.json: %w", err)
	}
	cfg["name"] = Slug(repo)
	return marshal(cfg)
}

func setURL(pkg map[string]any, key, url string) {
	obj, ok := pkg[key].(map[string]any)
	if !ok {
		obj = map[string]any{}
		if key == "repository" {
			obj["type"] = "git"
		}
	}
	obj["url"] = url
	pkg[key] = obj
}

func marshal(v any) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

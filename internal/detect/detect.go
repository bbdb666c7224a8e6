package detect

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Type is a detected project type.
type Type string

// Known project types.
const (
	Node       Type = "node"
	Yarn       Type = "yarn"
	React      Type = "react"
	Vue        Type = "vue"
	Angular    Type = "angular"
	Python     Type = "python"
	JavaMaven  Type = "java-maven"
	JavaGradle Type = "java-gradle"
	Rust       Type = "rust"
	Go         Type = "go"
	HTML       Type = "html"
	Docker     Type = "docker"
	Unknown    Type = "unknown"
	Error      Type = "error"
)

// AllTypes lists every type a fleet manifest may force, in priority order.
var AllTypes = []Type{
	React, Vue, Angular, Yarn, Node, Python, JavaMaven, JavaGradle, Rust, Go, HTML, Docker, Unknown,
}

// Parse returns the Type named s, or false if s is not a known type.
func Parse(s string) (Type, bool) {
	for _, t := range AllTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// IsNodeFamily reports whether t is built with a JavaScript package manager.
func (t Type) IsNodeFamily() bool {
	switch t {
	case Node, Yarn, React, Vue, Angular:
		return true
	}
	return false
}

// Probe is a single directory listing that answers marker-file questions
// without touching the disk again.
type Probe struct {
	Dir   string
	files map[string]bool
	dirs  map[string]bool
}

// NewProbe lists dir once.
func NewProbe(dir string) (*Probe, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	p := &Probe{Dir: dir, files: make(map[string]bool), dirs: make(map[string]bool)}
	for _, e := range entries {
		if e.IsDir() {
			p.dirs[e.Name()] = true
		} else {
			p.files[e.Name()] = true
		}
	}
	return p, nil
}

// Has reports whether a regular file (or symlink) named name exists.
func (p *Probe) Has(name string) bool { return p.files[name] }

// HasDir reports whether a subdirectory named name exists.
func (p *Probe) HasDir(name string) bool { return p.dirs[name] }

// HasAny reports whether any of names exists as a file.
func (p *Probe) HasAny(names ...string) bool {
	for _, n := range names {
		if p.files[n] {
			return true
		}
	}
	return false
}

// HasSuffix reports whether any file ends with suffix.
func (p *Probe) HasSuffix(suffix string) bool {
	for name := range p.files {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// Detect lists dir and classifies it. A directory that cannot be read
// yields Error together with the read error.
func Detect(dir string) (Type, error) {
	p, err := NewProbe(dir)
	if err != nil {
		return Error, err
	}
	return Classify(p), nil
}

// Classify applies the marker-file rules to an existing probe.
func Classify(p *Probe) Type {
	switch {
	case p.Has("package.json"):
		if t := frameworkOf(filepath.Join(p.Dir, "package.json")); t != "" {
			return t
		}
		if p.Has("yarn.lock") {
			return Yarn
		}
		return Node
	case p.HasAny("requirements.txt", "setup.py", "pyproject.toml"):
		return Python
	case p.Has("pom.xml"):
		return JavaMaven
	case p.HasAny("build.gradle", "build.gradle.kts"):
		return JavaGradle
	case p.Has("Cargo.toml"):
		return Rust
	case p.Has("go.mod"):
		return Go
	case p.Has("index.html") || p.HasSuffix(".html"):
		return HTML
	case p.Has("Dockerfile"):
		return Docker
	default:
		return Unknown
	}
}

type packageJSON struct {
	Dependencies    map[string]any `json:"dependencies"`
	DevDependencies map[string]any `json:"devDependencies"`
}

// frameworkOf returns React, Vue or Angular when package.json names the
// framework, or "" when it doesn't or cannot be parsed.
func frameworkOf(path string) Type {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return ""
	}
	inDeps := func(name string) bool { _, ok := pkg.Dependencies[name]; return ok }
	inDev := func(name string) bool { _, ok := pkg.DevDependencies[name]; return ok }

	switch {
	case inDeps("react") || inDev("react"):
		return React
	case inDeps("vue") || inDev("@vue/cli-service"):
		return Vue
	case inDeps("@angular/core") || inDev("@angular/cli"):
		return Angular
	}
	return ""
}

package recipe

import "github.com/orgbuild-labs/orgbuild/internal/detect"

var nodeCleanDirs = []string{"node_modules"}

var table = map[detect.Type]Recipe{
	detect.Node: {
		Type: detect.Node,
		Steps: []Step{
			{Name: "install", Install: true, Alternatives: cmds("npm install", "yarn install")},
			{Name: "lint", Check: true, Optional: true, Alternatives: cmds("npm run lint:fix")},
			{Name: "test", Check: true, Alternatives: cmds("npm run test")},
			{Name: "build", Optional: true, Alternatives: cmds("npm run build", "npm run compile", "npm run dist")},
		},
		ArtifactDir:   "dist",
		RequiredFiles: []string{"package.json"},
		CleanDirs:     nodeCleanDirs,
	},
	detect.Yarn: {
		Type: detect.Yarn,
		Steps: []Step{
			{Name: "install", Install: true, Alternatives: cmds("yarn install")},
			{Name: "lint", Check: true, Optional: true, Alternatives: cmds("yarn lint")},
			{Name: "test", Check: true, Alternatives: cmds("yarn test")},
			{Name: "build", Optional: true, Alternatives: cmds("yarn build", "yarn compile", "yarn dist")},
		},
		ArtifactDir:   "dist",
		RequiredFiles: []string{"package.json"},
		CleanDirs:     nodeCleanDirs,
	},
	detect.React: {
		Type: detect.React,
		Steps: []Step{
			{Name: "install", Install: true, Alternatives: cmds("npm install", "yarn install")},
			{Name: "lint", Check: true, Optional: true, Alternatives: cmds("npm run lint:fix")},
			{Name: "test", Check: true, Alternatives: cmds("npm run test -- --coverage --watchAll=false")},
			{Name: "build", Alternatives: cmds("npm run build")},
		},
		ArtifactDir:   "build",
		RequiredFiles: []string{"package.json"},
		CleanDirs:     nodeCleanDirs,
	},
	detect.Vue: {
		Type: detect.Vue,
		Steps: []Step{
			{Name: "install", Install: true, Alternatives: cmds("npm install", "yarn install")},
			{Name: "lint", Check: true, Optional: true, Alternatives: cmds("npm run lint:fix")},
			{Name: "test", Check: true, Alternatives: cmds("npm run test:unit")},
			{Name: "build", Alternatives: cmds("npm run build")},
		},
		ArtifactDir:   "dist",
		RequiredFiles: []string{"package.json"},
		CleanDirs:     nodeCleanDirs,
	},
	detect.Angular: {
		Type: detect.Angular,
		Steps: []Step{
			{Name: "install", Install: true, Alternatives: cmds("npm install", "yarn install")},
			{Name: "lint", Check: true, Optional: true, Alternatives: cmds("ng lint --fix")},
			{Name: "test", Check: true, Alternatives: cmds("ng test --watch=false --browsers=ChromeHeadless")},
			{Name: "build", Alternatives: cmds("ng build --prod", "npm run build")},
		},
		ArtifactDir:   "dist",
		RequiredFiles: []string{"package.json", "angular.json"},
		CleanDirs:     nodeCleanDirs,
	},
	detect.Python: {
		Type: detect.Python,
		Steps: []Step{
			{
				Name:         "install requirements",
				Install:      true,
				Optional:     true,
				Alternatives: cmds("pip3 install -r requirements.txt", "python -m pip install -r requirements.txt"),
				When:         func(p *detect.Probe) bool { return p.Has("requirements.txt") },
			},
			{
				Name:         "install package",
				Install:      true,
				Optional:     true,
				Alternatives: cmds("python setup.py install"),
				When:         func(p *detect.Probe) bool { return p.Has("setup.py") },
			},
			{
				Name:         "install project",
				Install:      true,
				Optional:     true,
				Alternatives: cmds("pip3 install .", "python -m pip install ."),
				When:         func(p *detect.Probe) bool { return p.Has("pyproject.toml") && !p.Has("setup.py") },
			},
			{
				Name:         "test",
				Optional:     true,
				Alternatives: cmds("python -m pytest"),
				When:         func(p *detect.Probe) bool { return p.HasDir("test") || p.HasDir("tests") },
			},
		},
		ArtifactDir: "build",
		NeedInstall: true,
	},
	detect.JavaMaven: {
		Type: detect.JavaMaven,
		Steps: []Step{
			{Name: "compile", Alternatives: cmds("mvn clean compile")},
			{Name: "test", Check: true, Alternatives: cmds("mvn test")},
			{Name: "package", Optional: true, Alternatives: cmds("mvn package")},
		},
		ArtifactDir:   "target",
		RequiredFiles: []string{"pom.xml"},
	},
	detect.JavaGradle: {
		Type: detect.JavaGradle,
		Steps: []Step{
			{Name: "clean", Alternatives: cmds("./gradlew clean"), When: hasGradleWrapper},
			{Name: "clean", Alternatives: cmds("gradle clean"), When: noGradleWrapper},
			{Name: "test", Check: true, Alternatives: cmds("./gradlew test"), When: hasGradleWrapper},
			{Name: "test", Check: true, Alternatives: cmds("gradle test"), When: noGradleWrapper},
			{Name: "build", Optional: true, Alternatives: cmds("./gradlew build"), When: hasGradleWrapper},
			{Name: "build", Optional: true, Alternatives: cmds("gradle build"), When: noGradleWrapper},
		},
		ArtifactDir: "build",
	},
	detect.Rust: {
		Type:          detect.Rust,
		Steps:         []Step{{Name: "build", Alternatives: cmds("cargo build --release")}},
		ArtifactDir:   "target",
		RequiredFiles: []string{"Cargo.toml"},
	},
	detect.Go: {
		Type: detect.Go,
		Steps: []Step{
			{Name: "tidy", Optional: true, Alternatives: cmds("go mod tidy")},
			{Name: "test", Check: true, Alternatives: cmds("go test ./...")},
			{Name: "build", Alternatives: cmds("go build ./...")},
		},
		RequiredFiles: []string{"go.mod"},
	},
	detect.HTML: {
		Type:       detect.HTML,
		Skip:       true,
		SkipReason: "static HTML, no build required",
	},
	detect.Docker: {
		Type:       detect.Docker,
		Skip:       true,
		SkipReason: "docker build skipped (run manually)",
	},
	detect.Unknown: {
		Type:       detect.Unknown,
		Skip:       true,
		SkipReason: "unknown project type",
	},
	detect.Error: {
		Type:       detect.Error,
		Skip:       true,
		SkipReason: "cannot read directory",
	},
}

// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package recommend

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// Stack labels.
const (
	StackNode       = "Node.js"
	StackJSTS       = "JavaScript/TypeScript"
	StackPython     = "Python"
	StackGo         = "Go"
	StackRust       = "Rust"
	StackJava       = "Java"
	StackRuby       = "Ruby"
	StackPHP        = "PHP"
	StackDocker     = "Docker"
	StackDotNet     = ".NET"
	StackReact      = "React"
	StackVue        = "Vue"
	StackAngular    = "Angular"
	StackSvelte     = "Svelte"
	StackNext       = "Next.js"
	StackExpress    = "Express"
	StackTypeScript = "TypeScript"
)

// Need labels.
const (
	NeedLLM            = "LLM integration"
	NeedNLP            = "natural language processing"
	NeedVision         = "computer vision"
	NeedImage          = "image processing"
	NeedRecommendation = "recommendation systems"
	NeedPersonalize    = "personalization"
	NeedSemanticSearch = "semantic search"
	NeedEmbeddings     = "embeddings"
	NeedML             = "machine learning"
	NeedDataAnalysis   = "data analysis"
	NeedTranslation    = "translation"
	NeedSentiment      = "sentiment analysis"
	NeedSpeech         = "speech processing"
	NeedFrontendAI     = "frontend AI components"
	NeedMLFramework    = "ML framework integration"
	NeedGeneral        = "general AI capabilities"
	NeedAutomation     = "automation"
)

// skipDirs are dependency and build directories never walked.
var skipDirs = map[string]bool{
	"node_modules":     true,
	"vendor":           true,
	"venv":             true,
	"env":              true,
	"__pycache__":      true,
	"dist":             true,
	"build":            true,
	"target":           true,
	"site-packages":    true,
	"bower_components": true,
	"Pods":             true,
}

// manifestStacks maps manifest file names to the labels their presence implies.
var manifestStacks = map[string][]string{
	"package.json":        {StackNode, StackJSTS},
	"requirements.txt":    {StackPython},
	"pyproject.toml":      {StackPython},
	"setup.py":            {StackPython},
	"pipfile":             {StackPython},
	"go.mod":              {StackGo},
	"cargo.toml":          {StackRust},
	"pom.xml":             {StackJava},
	"build.gradle":        {StackJava},
	"build.gradle.kts":    {StackJava},
	"gemfile":             {StackRuby},
	"composer.json":       {StackPHP},
	"dockerfile":          {StackDocker},
	"docker-compose.yml":  {StackDocker},
	"docker-compose.yaml": {StackDocker},
}

var extensionStacks = map[string]string{
	".py":    StackPython,
	".ipynb": StackPython,
	".js":    StackJSTS,
	".jsx":   StackJSTS,
	".mjs":   StackJSTS,
	".ts":    StackJSTS,
	".tsx":   StackJSTS,
	".go":    StackGo,
	".rs":    StackRust,
	".java":  StackJava,
	".kt":    "Kotlin",
	".rb":    StackRuby,
	".php":   StackPHP,
	".cs":    "C#",
	".cpp":   "C++",
	".cc":    "C++",
	".hpp":   "C++",
	".c":     "C",
	".swift": "Swift",
}

// npmStacks maps package.json dependency names to stack labels.
var npmStacks = map[string]string{
	"react":         StackReact,
	"vue":           StackVue,
	"@angular/core": StackAngular,
	"svelte":        StackSvelte,
	"next":          StackNext,
	"express":       StackExpress,
	"typescript":    StackTypeScript,
}

var frontendStacks = []string{StackReact, StackVue, StackAngular, StackSvelte, StackNext}

// pythonPackages matches well-known packages in Python manifests.
var pythonPackages = regexp.MustCompile(`(?i)\b(django|flask|fastapi|torch|tensorflow|transformers|langchain|scikit-learn)\b`)

var pythonStacks = map[string]string{
	"django":       "Django",
	"flask":        "Flask",
	"fastapi":      "FastAPI",
	"torch":        "PyTorch",
	"tensorflow":   "TensorFlow",
	"transformers": "Transformers",
	"langchain":    "LangChain",
	"scikit-learn": "scikit-learn",
}

// needClusters are scanned against README text in order. A cluster matches
// when any stem starts a word.
var needClusters = []struct {
	pattern *regexp.Regexp
	needs   []string
}{
	{regexp.MustCompile(`(?i)\b(chat|conversation|assistant)`), []string{NeedLLM, NeedNLP}},
	{regexp.MustCompile(`(?i)\b(image|vision|photo)`), []string{NeedVision, NeedImage}},
	{regexp.MustCompile(`(?i)\b(recommend|personaliz)`), []string{NeedRecommendation, NeedPersonalize}},
	{regexp.MustCompile(`(?i)\b(search|retriev)`), []string{NeedSemanticSearch, NeedEmbeddings}},
	{regexp.MustCompile(`(?i)\b(analy|predict)`), []string{NeedML, NeedDataAnalysis}},
	{regexp.MustCompile(`(?i)\btranslat`), []string{NeedTranslation}},
	{regexp.MustCompile(`(?i)\bsentiment`), []string{NeedSentiment}},
	{regexp.MustCompile(`(?i)\b(voice|speech)`), []string{NeedSpeech}},
}

// ProjectProfile is what a directory scan infers about a project.
type ProjectProfile struct {
	TechStack   []string
	AINeeds     []string
	Description string
	FilesSeen   int
}

// ErrInvalidProjectPath marks a project path that is missing or not a directory.
var ErrInvalidProjectPath = errors.New("invalid project path")

// scannedFile is a file found by the walk, relative to the project root.
type scannedFile struct {
	rel   string
	depth int
}

// ScanProject walks root and infers its tech stack and AI needs.
// Unreadable entries are skipped; only an unusable root is an error.
func ScanProject(ctx context.Context, root string, cfg *Config) (*ProjectProfile, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProjectPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %q is not a directory", ErrInvalidProjectPath, root)
	}

	files, err := walkProject(ctx, root, cfg)
	if err != nil {
		return nil, err
	}

	stack := detectStack(root, files)
	readme := findReadme(root, files, cfg)

	return &ProjectProfile{
		TechStack:   stack,
		AINeeds:     inferNeeds(readme, stack),
		Description: firstProseLine(readme),
		FilesSeen:   len(files),
	}, nil
}

func walkProject(ctx context.Context, root string, cfg *Config) ([]scannedFile, error) {
	var files []scannedFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		depth := strings.Count(filepath.ToSlash(rel), "/") + 1

		if d.IsDir() {
			name := d.Name()
			if strings.HasPrefix(name, ".") || skipDirs[name] || depth >= cfg.MaxDepth {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		files = append(files, scannedFile{rel: rel, depth: depth})
		if len(files) >= cfg.MaxFiles {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk project: %w", err)
	}
	return files, nil
}

func detectStack(root string, files []scannedFile) []string {
	set := make(map[string]bool)
	for _, f := range files {
		base := strings.ToLower(filepath.Base(f.rel))
		for _, label := range manifestStacks[base] {
			set[label] = true
		}
		if strings.HasSuffix(base, ".csproj") {
			set[StackDotNet] = true
		}
		if label, ok := extensionStacks[filepath.Ext(base)]; ok {
			set[label] = true
		}

		full := filepath.Join(root, f.rel)
		switch base {
		case "package.json":
			for _, label := range npmDependencies(full) {
				set[label] = true
			}
		case "requirements.txt", "pyproject.toml", "pipfile", "setup.py":
			for _, label := range pythonDependencies(full) {
				set[label] = true
			}
		}
	}

	stack := make([]string, 0, len(set))
	for label := range set {
		stack = append(stack, label)
	}
	sort.Strings(stack)
	return stack
}

type packageManifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func npmDependencies(path string) []string {
	raw, err := readLimited(path, 1<<20)
	if err != nil {
		return nil
	}
	var pkg packageManifest
	if err := json.Unmarshal(raw, &pkg); err != nil {
		return nil
	}
	var out []string
	for dep, label := range npmStacks {
		_, inDeps := pkg.Dependencies[dep]
		_, inDev := pkg.DevDependencies[dep]
		if inDeps || inDev {
			out = append(out, label)
		}
	}
	return out
}

func pythonDependencies(path string) []string {
	raw, err := readLimited(path, 1<<20)
	if err != nil {
		return nil
	}
	var out []string
	for _, m := range pythonPackages.FindAllString(string(raw), -1) {
		if label, ok := pythonStacks[strings.ToLower(m)]; ok {
			out = append(out, label)
		}
	}
	return out
}

// findReadme returns the text of the shallowest README within ReadmeDepth.
func findReadme(root string, files []scannedFile, cfg *Config) string {
	best := -1
	for i, f := range files {
		if f.depth > cfg.ReadmeDepth {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(filepath.Base(f.rel)), "readme") {
			continue
		}
		if best == -1 || f.depth < files[best].depth {
			best = i
		}
	}
	if best == -1 {
		return ""
	}
	raw, err := readLimited(filepath.Join(root, files[best].rel), cfg.MaxReadmeBytes)
	if err != nil {
		return ""
	}
	return string(raw)
}

func inferNeeds(readme string, stack []string) []string {
	var needs []string
	seen := make(map[string]bool)
	add := func(labels ...string) {
		for _, l := range labels {
			if !seen[l] {
				seen[l] = true
				needs = append(needs, l)
			}
		}
	}

	if readme != "" {
		for _, c := range needClusters {
			if c.pattern.MatchString(readme) {
				add(c.needs...)
			}
		}
	}

	hasStack := make(map[string]bool, len(stack))
	for _, s := range stack {
		hasStack[s] = true
	}
	for _, fw := range frontendStacks {
		if hasStack[fw] {
			add(NeedFrontendAI)
			break
		}
	}
	if hasStack[StackPython] {
		add(NeedMLFramework)
	}

	if len(needs) == 0 {
		add(NeedGeneral, NeedAutomation)
	}
	return needs
}

// firstProseLine skips headings, badges, markup and fences.
func firstProseLine(readme string) string {
	sc := bufio.NewScanner(strings.NewReader(readme))
	inFence := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "```") {
			inFence = !inFence
			continue
		}
		if inFence || line == "" {
			continue
		}
		switch line[0] {
		case '#', '!', '[', '<', '=', '-', '|', '>':
			continue
		}
		if r := []rune(line); len(r) > 300 {
			line = string(r[:300])
		}
		return line
	}
	return ""
}

func readLimited(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from a walk of the user's own project
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	raw, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return raw, nil
}

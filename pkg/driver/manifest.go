package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the project manifest looked up by the CLI.
const ManifestFileName = "lox.yml"

// Manifest represents the parsed contents of lox.yml.
type Manifest struct {
	Path     string
	Dir      string
	Name     string
	Version  string
	Main     string
	Preludes []*PreludeSpec
	Limits   Limits
}

// Limits carries interpreter resource settings.
type Limits struct {
	MaxCallDepth int
}

// PreludeSpec describes a source file executed before the entry script.
// Exactly one of Path or Git is set; git preludes name the File to run from
// the fetched checkout and pin it with one of Rev, Tag or Branch.
type PreludeSpec struct {
	Name   string
	Path   string
	Git    string
	Rev    string
	Tag    string
	Branch string
	File   string
}

// IsGit reports whether the prelude is fetched from a repository.
func (p *PreludeSpec) IsGit() bool {
	return p != nil && p.Git != ""
}

// Ref returns the requested git revision in the most specific form given.
func (p *PreludeSpec) Ref() string {
	switch {
	case p.Rev != "":
		return p.Rev
	case p.Tag != "":
		return p.Tag
	case p.Branch != "":
		return p.Branch
	default:
		return ""
	}
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses lox.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// MainPath resolves the entry script against the manifest directory.
func (m *Manifest) MainPath() string {
	if m == nil || m.Main == "" {
		return ""
	}
	return m.resolve(m.Main)
}

// LocalPreludePath resolves a path prelude against the manifest directory.
func (m *Manifest) LocalPreludePath(p *PreludeSpec) string {
	if p == nil || p.Path == "" {
		return ""
	}
	return m.resolve(p.Path)
}

// GitPreludes returns the preludes that must be fetched.
func (m *Manifest) GitPreludes() []*PreludeSpec {
	var out []*PreludeSpec
	for _, p := range m.Preludes {
		if p.IsGit() {
			out = append(out, p)
		}
	}
	return out
}

func (m *Manifest) resolve(rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(m.Dir, filepath.FromSlash(rel))
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Limits.MaxCallDepth < 0 {
		errs.Issues = append(errs.Issues, "limits.max_call_depth must not be negative")
	}
	names := make(map[string]int, len(m.Preludes))
	for idx, p := range m.Preludes {
		for _, issue := range p.validate() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("prelude[%d]: %s", idx, issue))
		}
		if p.Name == "" {
			continue
		}
		if other, exists := names[p.Name]; exists {
			errs.Issues = append(errs.Issues, fmt.Sprintf("prelude[%d]: name %q already used by prelude[%d]", idx, p.Name, other))
		} else {
			names[p.Name] = idx
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func (p *PreludeSpec) validate() []string {
	var errs []string
	switch {
	case p.Path == "" && p.Git == "":
		errs = append(errs, "must specify path or git")
	case p.Path != "" && p.Git != "":
		errs = append(errs, "path preludes cannot also specify git")
	}
	if p.Path != "" && (p.Rev != "" || p.Tag != "" || p.Branch != "" || p.File != "") {
		errs = append(errs, "rev, tag, branch and file apply only to git preludes")
	}
	if p.Git != "" {
		refs := 0
		for _, ref := range []string{p.Rev, p.Tag, p.Branch} {
			if ref != "" {
				refs++
			}
		}
		if refs != 1 {
			errs = append(errs, "git preludes must specify exactly one of rev, tag or branch")
		}
		if p.File == "" {
			errs = append(errs, "git preludes must name the file to run")
		}
	}
	return errs
}

type manifestFile struct {
	Name    string      `yaml:"name"`
	Version string      `yaml:"version"`
	Main    string      `yaml:"main"`
	Prelude preludeList `yaml:"prelude"`
	Limits  limitsYAML  `yaml:"limits"`
}

type limitsYAML struct {
	MaxCallDepth int `yaml:"max_call_depth"`
}

type preludeList []*PreludeSpec

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path:     path,
		Dir:      filepath.Dir(path),
		Name:     sanitizeSegment(strings.TrimSpace(mf.Name)),
		Version:  strings.TrimSpace(mf.Version),
		Main:     strings.TrimSpace(mf.Main),
		Preludes: make([]*PreludeSpec, 0, len(mf.Prelude)),
		Limits:   Limits{MaxCallDepth: mf.Limits.MaxCallDepth},
	}
	for _, p := range mf.Prelude {
		if p == nil {
			continue
		}
		copy := *p
		if copy.Name == "" && copy.Git != "" {
			copy.Name = defaultPreludeName(copy.Git)
		}
		result.Preludes = append(result.Preludes, &copy)
	}
	return result
}

// defaultPreludeName derives a name from the last segment of a repository URL.
func defaultPreludeName(url string) string {
	trimmed := strings.TrimSuffix(strings.TrimRight(url, "/"), ".git")
	if idx := strings.LastIndexAny(trimmed, "/:"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	return sanitizeSegment(trimmed)
}

func (l *preludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*l = nil
			return nil
		}
		return fmt.Errorf("manifest: prelude must be a sequence")
	case yaml.SequenceNode:
		items := make(preludeList, 0, len(value.Content))
		for idx, node := range value.Content {
			var spec PreludeSpec
			if err := spec.unmarshalYAML(node); err != nil {
				return fmt.Errorf("manifest: prelude[%d]: %w", idx, err)
			}
			items = append(items, &spec)
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("manifest: prelude must be a sequence")
	}
}

// unmarshalYAML accepts either a bare path or a mapping.
func (p *PreludeSpec) unmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*p = PreludeSpec{Path: strings.TrimSpace(value.Value)}
		return nil
	case yaml.MappingNode:
		var raw struct {
			Name   string `yaml:"name"`
			Path   string `yaml:"path"`
			Git    string `yaml:"git"`
			Rev    string `yaml:"rev"`
			Tag    string `yaml:"tag"`
			Branch string `yaml:"branch"`
			File   string `yaml:"file"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*p = PreludeSpec{
			Name:   sanitizeSegment(strings.TrimSpace(raw.Name)),
			Path:   strings.TrimSpace(raw.Path),
			Git:    strings.TrimSpace(raw.Git),
			Rev:    strings.TrimSpace(raw.Rev),
			Tag:    strings.TrimSpace(raw.Tag),
			Branch: strings.TrimSpace(raw.Branch),
			File:   strings.TrimSpace(raw.File),
		}
		return nil
	case yaml.AliasNode:
		return p.unmarshalYAML(value.Alias)
	default:
		return fmt.Errorf("expected string or mapping, found %s", value.ShortTag())
	}
}

// sanitizeSegment lowercases a name and maps anything outside [a-z0-9_] to '_'.
func sanitizeSegment(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

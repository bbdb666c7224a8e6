package fleet

// Fleet is the top-level fleet manifest.
type Fleet struct {
	Org     string     `yaml:"org" json:"org"`
	Repos   []RepoSpec `yaml:"repos" json:"repos"`
	Exclude []string   `yaml:"exclude,omitempty" json:"exclude,omitempty"`
}

// RepoSpec declares one repository and its overrides.
type RepoSpec struct {
	Name     string   `yaml:"name" json:"name"`
	URL      string   `yaml:"url,omitempty" json:"url,omitempty"`
	Skip     bool     `yaml:"skip,omitempty" json:"skip,omitempty"`
	Type     string   `yaml:"type,omitempty" json:"type,omitempty"`
	Commands []string `yaml:"commands,omitempty" json:"commands,omitempty"`
}

// Override returns the manifest entry for name, or nil when the fleet (which may be
// nil) doesn't mention it.
func (f *Fleet) Override(name string) *RepoSpec {
	if f == nil {
		return nil
	}
	for i := range f.Repos {
		if f.Repos[i].Name == name {
			return &f.Repos[i]
		}
	}
	return nil
}

// Excluded reports whether name is listed under exclude or marked skip.
func (f *Fleet) Excluded(name string) bool {
	if f == nil {
		return false
	}
	for _, e := range f.Exclude {
		if e == name {
			return true
		}
	}
	if spec := f.Override(name); spec != nil && spec.Skip {
		return true
	}
	return false
}

// Names returns the declared repository names in file order.
func (f *Fleet) Names() []string {
	if f == nil {
		return nil
	}
	names := make([]string, 0, len(f.Repos))
	for _, r := range f.Repos {
		names = append(names, r.Name)
	}
	return names
}

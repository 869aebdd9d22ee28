// Package structgen turns flat struct descriptors into classes of a code
// model: plain fields with optional accessors, inheritance between the
// described classes and constructors for final fields.
package structgen

// Descriptor is one decoded descriptor file.
type Descriptor struct {
	// Package receives every class of the descriptor; class names may add
	// sub-packages ("inherit.City").
	Package string `toml:"package" yaml:"package" json:"package"`
	// Options apply to every class of the descriptor.
	Options []string `toml:"options" yaml:"options" json:"options"`
	// Packages holds options per sub-package, keyed by the sub-package
	// relative to Package.
	Packages map[string][]string `toml:"packages" yaml:"packages" json:"packages"`
	Classes  []ClassDecl         `toml:"classes" yaml:"classes" json:"classes"`
}

// ClassDecl describes one generated class.
type ClassDecl struct {
	Name       string      `toml:"name" yaml:"name" json:"name"`
	Extends    string      `toml:"extends" yaml:"extends" json:"extends"`
	Implements []string    `toml:"implements" yaml:"implements" json:"implements"`
	Abstract   bool        `toml:"abstract" yaml:"abstract" json:"abstract"`
	Options    []string    `toml:"options" yaml:"options" json:"options"`
	Fields     []FieldDecl `toml:"fields" yaml:"fields" json:"fields"`
}

// FieldDecl describes one field. Type is Java type text, optionally
// followed by container suffixes: "String[] list" is List<String[]>.
type FieldDecl struct {
	Name    string   `toml:"name" yaml:"name" json:"name"`
	Type    string   `toml:"type" yaml:"type" json:"type"`
	Options []string `toml:"options" yaml:"options" json:"options"`
}

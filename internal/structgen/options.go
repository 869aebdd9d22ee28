package structgen

import (
	"strings"

	"jcodemodel/internal/codemodel"
)

// Switch is a tri-state option value.
type Switch uint8

const (
	Unset Switch = iota
	On
	Off
)

// Visibility is the access level of generated fields.
type Visibility uint8

const (
	VisUnset Visibility = iota
	VisPublic
	VisProtected
	VisPrivate
	VisPackage
)

func (v Visibility) mods() codemodel.Mods {
	switch v {
	case VisPublic:
		return codemodel.ModPublic
	case VisProtected:
		return codemodel.ModProtected
	case VisPackage:
		return codemodel.ModNone
	}
	return codemodel.ModPrivate
}

// Options holds the switches set at one level of a descriptor. Unset
// switches fall through to the enclosing level.
type Options struct {
	Getter      Switch
	Setter      Switch
	Final       Switch
	LastUpdated Switch
	Redirect    Switch
	Visibility  Visibility
}

func (o *Options) getter() *Switch      { return &o.Getter }
func (o *Options) setter() *Switch      { return &o.Setter }
func (o *Options) final() *Switch       { return &o.Final }
func (o *Options) lastUpdated() *Switch { return &o.LastUpdated }
func (o *Options) redirect() *Switch    { return &o.Redirect }

type optionWord struct {
	field func(*Options) *Switch
	value Switch
}

var optionWords = map[string]optionWord{
	"getter":        {(*Options).getter, On},
	"get":           {(*Options).getter, On},
	"nogetter":      {(*Options).getter, Off},
	"noget":         {(*Options).getter, Off},
	"setter":        {(*Options).setter, On},
	"set":           {(*Options).setter, On},
	"nosetter":      {(*Options).setter, Off},
	"noset":         {(*Options).setter, Off},
	"final":         {(*Options).final, On},
	"const":         {(*Options).final, On},
	"immutable":     {(*Options).final, On},
	"nofinal":       {(*Options).final, Off},
	"noconst":       {(*Options).final, Off},
	"mutable":       {(*Options).final, Off},
	"lastupdated":   {(*Options).lastUpdated, On},
	"updated":       {(*Options).lastUpdated, On},
	"nolastupdated": {(*Options).lastUpdated, Off},
	"noupdated":     {(*Options).lastUpdated, Off},
	"redirect":      {(*Options).redirect, On},
	"noredirect":    {(*Options).redirect, Off},
}

var visibilityWords = map[string]Visibility{
	"public":    VisPublic,
	"protected": VisProtected,
	"private":   VisPrivate,
	"package":   VisPackage,
}

// OptionProblem is a word ParseOptions could not apply.
type OptionProblem struct {
	Word     string
	Conflict bool
}

// ParseOptions reads option words, case insensitively. Unknown words and
// words contradicting an earlier word of the same list are returned as
// problems; a contradicting word still wins.
func ParseOptions(words []string) (Options, []OptionProblem) {
	var (
		o        Options
		problems []OptionProblem
	)
	for _, w := range words {
		key := strings.ToLower(strings.TrimSpace(w))
		if key == "" {
			continue
		}
		if vis, ok := visibilityWords[key]; ok {
			if o.Visibility != VisUnset && o.Visibility != vis {
				problems = append(problems, OptionProblem{Word: w, Conflict: true})
			}
			o.Visibility = vis
			continue
		}
		word, ok := optionWords[key]
		if !ok {
			problems = append(problems, OptionProblem{Word: w})
			continue
		}
		sw := word.field(&o)
		if *sw != Unset && *sw != word.value {
			problems = append(problems, OptionProblem{Word: w, Conflict: true})
		}
		*sw = word.value
	}
	return o, problems
}

// Over returns o with its unset switches taken from parent.
func (o Options) Over(parent Options) Options {
	pick := func(own, inherited Switch) Switch {
		if own != Unset {
			return own
		}
		return inherited
	}
	o.Getter = pick(o.Getter, parent.Getter)
	o.Setter = pick(o.Setter, parent.Setter)
	o.Final = pick(o.Final, parent.Final)
	o.LastUpdated = pick(o.LastUpdated, parent.LastUpdated)
	o.Redirect = pick(o.Redirect, parent.Redirect)
	if o.Visibility == VisUnset {
		o.Visibility = parent.Visibility
	}
	return o
}

// Settings is a fully resolved option set.
type Settings struct {
	Getter      bool
	Setter      bool
	Final       bool
	LastUpdated bool
	Redirect    bool
	Visibility  codemodel.Mods
}

// Settings resolves the remaining unset switches to their defaults: every
// switch off, private fields.
func (o Options) Settings() Settings {
	return Settings{
		Getter:      o.Getter == On,
		Setter:      o.Setter == On,
		Final:       o.Final == On,
		LastUpdated: o.LastUpdated == On,
		Redirect:    o.Redirect == On,
		Visibility:  o.Visibility.mods(),
	}
}

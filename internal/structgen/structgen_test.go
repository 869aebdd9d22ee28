package structgen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jcodemodel/internal/codemodel"
	"jcodemodel/internal/diag"
	"jcodemodel/internal/format"
)

type source struct {
	file string
	desc *Descriptor
}

func build(t *testing.T, sources ...source) (*codemodel.Model, *diag.Bag) {
	t.Helper()
	m := codemodel.NewModel()
	bag := diag.NewBag(100)
	g := New(m, diag.BagReporter{Bag: bag})
	for _, s := range sources {
		g.Add(s.file, s.desc)
	}
	g.Build()
	return m, bag
}

func unit(t *testing.T, m *codemodel.Model, fqn string) string {
	t.Helper()
	cls, ok := m.Lookup(m.MustRef(fqn))
	require.True(t, ok, fqn)
	var buf bytes.Buffer
	require.NoError(t, m.WriteClass(&buf, cls, format.Options{}))
	return buf.String()
}

func codes(bag *diag.Bag) []string {
	var out []string
	for _, d := range bag.Items() {
		out = append(out, d.Code.ID()+" "+d.Primary.String())
	}
	return out
}

func TestSplitType(t *testing.T) {
	tests := []struct {
		text  string
		base  string
		wraps []Container
	}{
		{"String[]", "String", []Container{ContainerArray}},
		{"int [ ][ ] map", "int", []Container{ContainerArray, ContainerArray, ContainerMap}},
		{"double []set[]", "double", []Container{ContainerArray, ContainerSet, ContainerArray}},
		{"java.lang.String MAP   ", "java.lang.String", []Container{ContainerMap}},
		{"Point List", "Point", []Container{ContainerList}},
		{"long", "long", nil},
	}
	for _, tt := range tests {
		base, wraps, err := SplitType(tt.text)
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.base, base, tt.text)
		assert.Equal(t, tt.wraps, wraps, tt.text)
	}

	_, _, err := SplitType("String bag")
	require.ErrorIs(t, err, ErrBadContainer)
	_, _, err = SplitType("  ")
	require.Error(t, err)
}

func TestParseOptions(t *testing.T) {
	o, problems := ParseOptions([]string{"GET", " noset ", "immutable", "updated", "protected"})
	assert.Empty(t, problems)
	assert.Equal(t, Options{Getter: On, Setter: Off, Final: On, LastUpdated: On, Visibility: VisProtected}, o)

	_, problems = ParseOptions([]string{"getter", "nogetter", "public", "private", "gettr"})
	assert.Equal(t, []OptionProblem{{Word: "nogetter", Conflict: true}, {Word: "private", Conflict: true}, {Word: "gettr"}}, problems)

	field, _ := ParseOptions([]string{"mutable"})
	class, _ := ParseOptions([]string{"const", "setter"})
	s := field.Over(class).Settings()
	assert.False(t, s.Final)
	assert.True(t, s.Setter)
	assert.False(t, s.Getter)
	assert.Equal(t, codemodel.ModPrivate, s.Visibility)

	pkg, _ := ParseOptions([]string{"package"})
	assert.Equal(t, codemodel.ModNone, Options{}.Over(pkg).Settings().Visibility)
}

func TestInheritanceAndFinalFields(t *testing.T) {
	m, bag := build(t, source{"zoo.toml", &Descriptor{
		Package: "com.acme.zoo",
		Options: []string{"getter", "setter"},
		Classes: []ClassDecl{
			{Name: "Animal", Abstract: true, Options: []string{"final"}, Fields: []FieldDecl{
				{Name: "born", Type: "date"},
				{Name: "id", Type: "long"},
			}},
			{Name: "Dog", Extends: "Animal", Implements: []string{"java.io.Serializable"}, Fields: []FieldDecl{
				{Name: "species", Type: "String", Options: []string{"final"}},
				{Name: "master", Type: "string"},
				{Name: "good", Type: "bool"},
			}},
		},
	}})
	require.Zero(t, bag.Len(), codes(bag))

	animal := `package com.acme.zoo;

import java.time.Instant;

public abstract class Animal {
    private final Instant born;
    private final long id;

    public Animal(Instant born, long id) {
        this.born = born;
        this.id = id;
    }

    /**
     * @return the {@link #born}
     */
    public Instant getBorn() {
        return born;
    }

    /**
     * @return the {@link #id}
     */
    public long getId() {
        return id;
    }
}
`
	assert.Equal(t, animal, unit(t, m, "com.acme.zoo.Animal"))

	dog := `package com.acme.zoo;

import java.io.Serializable;
import java.time.Instant;

public class Dog extends Animal implements Serializable {
    private final String species;
    private String master;
    private boolean good;

    public Dog(Instant born, long id, String species) {
        super(born, id);
        this.species = species;
    }

    /**
     * @return the {@link #species}
     */
    public String getSpecies() {
        return species;
    }

    /**
     * set the {@link #master}
     */
    public void setMaster(String master) {
        this.master = master;
    }

    /**
     * @return the {@link #master}
     */
    public String getMaster() {
        return master;
    }

    /**
     * set the {@link #good}
     */
    public void setGood(boolean good) {
        this.good = good;
    }

    /**
     * @return the {@link #good}
     */
    public boolean isGood() {
        return good;
    }
}
`
	assert.Equal(t, dog, unit(t, m, "com.acme.zoo.Dog"))
}

func TestLastUpdated(t *testing.T) {
	m, bag := build(t, source{"stamp.yaml", &Descriptor{
		Package: "com.acme",
		Options: []string{"setter", "getter", "lastupdated"},
		Classes: []ClassDecl{{Name: "Stamped", Fields: []FieldDecl{
			{Name: "i", Type: "int"},
			{Name: "s", Type: "String"},
		}}},
	}})
	require.Zero(t, bag.Len(), codes(bag))
	got := unit(t, m, "com.acme.Stamped")

	assert.Contains(t, got, `    private int i;
    /**
     * last time the class was directly set a field using a setter
     */
    private Instant lastUpdated = null;
    private String s;
`)
	assert.Contains(t, got, `    public void setI(int i) {
        this.i = i;
        this.lastUpdated = Instant.now();
    }
`)
	order := []string{"setI(", "getLastUpdated(", "getI(", "setS(", "getS("}
	last := -1
	for _, name := range order {
		idx := strings.Index(got, name)
		require.Greater(t, idx, last, name)
		last = idx
	}
	assert.Equal(t, 1, strings.Count(got, "getLastUpdated("))
}

func TestPackagesAndTypeResolution(t *testing.T) {
	m, bag := build(t, source{"geo.json", &Descriptor{
		Package:  "com.acme.geo",
		Packages: map[string][]string{"inherit": {"final", "public"}},
		Classes: []ClassDecl{
			{Name: "inherit.Point", Fields: []FieldDecl{
				{Name: "x", Type: "double"},
			}},
			{Name: "inherit.City", Extends: "Runnable", Fields: []FieldDecl{
				{Name: "corners", Type: "Point list"},
				{Name: "names", Type: "String map"},
				{Name: "aliases", Type: "Map<String, Set<Point>>", Options: []string{"mutable", "private"}},
				{Name: "code", Type: "UUID"},
				{Name: "gadget", Type: "Gizmo"},
			}},
		},
	}})

	require.Len(t, bag.Items(), 1)
	warn := bag.Items()[0]
	assert.Equal(t, diag.SevWarning, warn.Severity)
	assert.Equal(t, diag.TypUnresolved, warn.Code)
	assert.Equal(t, "geo.json:inherit.City.gadget.type", warn.Primary.String())

	got := unit(t, m, "com.acme.geo.inherit.City")
	assert.Contains(t, got, "import java.util.List;\nimport java.util.Map;\nimport java.util.Set;\nimport java.util.UUID;\n")
	assert.Contains(t, got, "public class City implements Runnable {\n")
	assert.Contains(t, got, "    public final List<Point> corners;\n")
	assert.Contains(t, got, "    public final Map<Object, String> names;\n")
	assert.Contains(t, got, "    private Map<String, Set<Point>> aliases;\n")
	assert.Contains(t, got, "    public final Gizmo gadget;\n")
	assert.Contains(t, got, "    public City(List<Point> corners, Map<Object, String> names, UUID code, Gizmo gadget) {\n")
	assert.NotContains(t, got, "import com.acme.geo.inherit")
}

func TestProblemsAreReported(t *testing.T) {
	_, bag := build(t,
		source{"a.toml", &Descriptor{
			Package: "com.a",
			Options: []string{"gettr"},
			Classes: []ClassDecl{
				{Name: "Shared"},
				{Name: "Shared"},
				{Name: "Loop", Extends: "Loop"},
				{Name: "Num", Extends: "int"},
				{Name: "Worker", Implements: []string{"Thread"}},
				{Name: "Holder", Fields: []FieldDecl{
					{Name: "x", Type: "int"},
					{Name: "x", Type: "long"},
					{Name: "class", Type: "int"},
					{Name: "y"},
					{Name: "z", Type: "String bag"},
					{Name: "w", Type: "Dup"},
				}},
			},
		}},
		source{"b.toml", &Descriptor{
			Package: "com.b",
			Classes: []ClassDecl{{Name: "Dup"}, {Name: "x.Dup"}},
		}},
		source{"c.toml", &Descriptor{Package: "com.c"}},
	)
	assert.ElementsMatch(t, []string{
		"DSC1002 a.toml:options",
		"DSC1003 a.toml:Shared",
		"TYP2005 a.toml:Loop.extends",
		"TYP2004 a.toml:Num.extends",
		"TYP2006 a.toml:Worker.implements[0]",
		"DSC1004 a.toml:Holder.x",
		"DSC1005 a.toml:Holder.class",
		"DSC1006 a.toml:Holder.y",
		"TYP2003 a.toml:Holder.z.type",
		"TYP2002 a.toml:Holder.w.type",
		"DSC1008 c.toml",
	}, codes(bag))
	require.Error(t, bag.Err())
}

func TestInheritanceLoopIsBroken(t *testing.T) {
	m, bag := build(t, source{"k.toml", &Descriptor{
		Package: "com.k",
		Classes: []ClassDecl{
			{Name: "Tail", Extends: "A"},
			{Name: "B", Extends: "A"},
			{Name: "A", Extends: "B"},
			{Name: "Leaf", Extends: "Root"},
			{Name: "Root"},
		},
	}})
	assert.Equal(t, []string{"TYP2005 k.toml:A.extends"}, codes(bag))

	assert.Contains(t, unit(t, m, "com.k.A"), "public class A {\n")
	assert.Contains(t, unit(t, m, "com.k.B"), "public class B extends A {\n")
	assert.Contains(t, unit(t, m, "com.k.Tail"), "public class Tail extends A {\n")
	assert.Contains(t, unit(t, m, "com.k.Leaf"), "public class Leaf extends Root {\n")
}

func TestTopLevelClassUsesDescriptorPackage(t *testing.T) {
	m, bag := build(t, source{"p.toml", &Descriptor{
		Package: "com.p",
		Classes: []ClassDecl{{Name: "Person"}, {Name: "sub.Address"}},
	}})
	require.Zero(t, bag.Len(), codes(bag))
	assert.Equal(t, "package com.p;\n\npublic class Person {\n}\n", unit(t, m, "com.p.Person"))
	assert.Contains(t, unit(t, m, "com.p.sub.Address"), "package com.p.sub;\n")

	assert.Equal(t, "com.p", join("com.p", ""))
	assert.Equal(t, "Person", join("", "Person"))
	assert.Equal(t, "com.p.Person", join("com.p", "Person"))
}

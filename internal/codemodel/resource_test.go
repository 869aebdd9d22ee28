package codemodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jcodemodel/internal/types"
)

func TestPropertyFileEscapes(t *testing.T) {
	p := NewPropertyFile("app.properties")
	p.Set("greeting", "hi").
		Set("key with space", " lead and trail ").
		Set("path", `C:\tmp`).
		Set("url", "a=b:c#d!").
		Set("multi", "one\ttwo\nthree").
		Set("name", "wörld \U0001F600").
		Set("greeting", "hello")

	v, ok := p.Get("greeting")
	require.True(t, ok)
	require.Equal(t, "hello", v)

	data, err := p.Content()
	require.NoError(t, err)
	want := "greeting=hello\n" +
		`key\ with\ space=\ lead and trail ` + "\n" +
		`path=C\:\\tmp` + "\n" +
		`url=a\=b\:c\#d\!` + "\n" +
		`multi=one\ttwo\nthree` + "\n" +
		`name=w\u00F6rld \uD83D\uDE00` + "\n"
	assert.Equal(t, want, string(data))
}

func TestStaticAndTextFiles(t *testing.T) {
	raw := []byte{0xca, 0xfe}
	sf := NewStaticFile("logo.bin", raw)
	raw[0] = 0
	data, err := sf.Content()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xca, 0xfe}, data)

	tf := NewTextFile("README.txt", "draft")
	tf.SetText("final")
	data, err = tf.Content()
	require.NoError(t, err)
	assert.Equal(t, "final", string(data))
}

func TestPackageResources(t *testing.T) {
	m := NewModel()
	pkg := m.MustPackage("com.acme")
	_, err := m.Class("com.acme.Widget", types.ClassKindClass)
	require.NoError(t, err)

	require.NoError(t, pkg.AddResource(NewTextFile("notes.txt", "x")))
	require.NoError(t, pkg.AddResource(NewPropertyFile("app.properties")))
	require.ErrorIs(t, pkg.AddResource(NewTextFile("notes.txt", "y")), ErrDuplicate)
	require.ErrorIs(t, pkg.AddResource(NewTextFile("Widget.java", "")), ErrDuplicate)
	require.Error(t, pkg.AddResource(NewTextFile("sub/notes.txt", "")))
	require.Error(t, pkg.AddResource(NewTextFile("..", "")))

	require.NoError(t, pkg.AddResource(NewTextFile("Gadget.java", "class Gadget {}")))
	_, err = m.Class("com.acme.Gadget", types.ClassKindClass)
	require.ErrorIs(t, err, ErrDuplicate)

	var names []string
	for _, rf := range pkg.Resources() {
		names = append(names, rf.Name())
	}
	assert.Equal(t, []string{"Gadget.java", "app.properties", "notes.txt"}, names)
	rf, ok := pkg.Resource("notes.txt")
	require.True(t, ok)
	data, err := rf.Content()
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

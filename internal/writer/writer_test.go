package writer

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func put(t *testing.T, w CodeWriter, pkg, name, content string) {
	t.Helper()
	out, err := w.Open(pkg, name)
	require.NoError(t, err)
	_, err = io.WriteString(out, content)
	require.NoError(t, err)
	require.NoError(t, out.Close())
}

func TestPath(t *testing.T) {
	assert.Equal(t, "com/acme/Foo.java", Path("com.acme", "Foo.java"))
	assert.Equal(t, "Foo.java", Path("", "Foo.java"))
}

func TestDirWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewDirWriter(root, ReadOnly())
	require.NoError(t, err)
	put(t, w, "com.acme", "Foo.java", "class Foo {}\n")
	put(t, w, "", "Bar.java", "class Bar {}\n")
	require.NoError(t, w.Close())

	got, err := os.ReadFile(filepath.Join(root, "com", "acme", "Foo.java"))
	require.NoError(t, err)
	assert.Equal(t, "class Foo {}\n", string(got))
	info, err := os.Stat(filepath.Join(root, "Bar.java"))
	require.NoError(t, err)
	assert.Zero(t, info.Mode().Perm()&0o222)
	assert.Len(t, w.Written(), 2)

	// a second run replaces read-only files from the previous one
	again, err := NewDirWriter(root)
	require.NoError(t, err)
	put(t, again, "", "Bar.java", "class Bar { int x; }\n")
	require.NoError(t, again.Close())
}

func TestDirWriterNeedsDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	_, err := NewDirWriter(file)
	require.Error(t, err)
	_, err = NewDirWriter(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestMemoryWriterConcurrent(t *testing.T) {
	w := NewMemoryWriter()
	var wg sync.WaitGroup
	for _, name := range []string{"A", "B", "C", "D"} {
		wg.Go(func() {
			out, err := w.Open("p", name+".java")
			if err != nil {
				return
			}
			_, _ = io.WriteString(out, name)
			_ = out.Close()
		})
	}
	wg.Wait()
	assert.Equal(t, []string{"p/A.java", "p/B.java", "p/C.java", "p/D.java"}, w.Files())
	b, ok := w.File("p/C.java")
	require.True(t, ok)
	assert.Equal(t, "C", string(b))
}

func TestStreamWriterOrdersByPath(t *testing.T) {
	var out bytes.Buffer
	w := NewStreamWriter(&out)
	put(t, w, "b", "Z.java", "z\n")
	put(t, w, "a", "Y.java", "y\n")
	require.NoError(t, w.Close())
	want := Banner("a/Y.java") + "\ny\n" + Banner("b/Z.java") + "\nz\n"
	assert.Equal(t, want, out.String())
	assert.True(t, strings.HasPrefix(Banner("x"), "-----------------------------------x"))
}

func TestPrologAndProgress(t *testing.T) {
	mem := NewMemoryWriter()
	var progress bytes.Buffer
	w := NewProgressWriter(NewPrologWriter(mem, "Generated.\nDo not edit."), &progress)
	put(t, w, "com.acme", "Foo.java", "class Foo {}\n")
	require.NoError(t, w.Close())

	got, _ := mem.File("com/acme/Foo.java")
	assert.Equal(t, "//\n// Generated.\n// Do not edit.\n//\n\nclass Foo {}\n", string(got))
	assert.Equal(t, "com/acme/Foo.java\n", progress.String())
	assert.Empty(t, Prolog(""))
}

func TestEncodingWriter(t *testing.T) {
	mem := NewMemoryWriter()
	w, err := NewEncodingWriter(mem, "ISO-8859-1")
	require.NoError(t, err)
	put(t, w, "", "A.java", "// café € \U0001F600\x01\n")
	got, _ := mem.File("A.java")
	assert.Equal(t, "// caf\xe9 \\u20ac \\ud83d\\ude00\\u0001\n", string(got))

	utf8w, err := NewEncodingWriter(mem, "UTF-8")
	require.NoError(t, err)
	put(t, utf8w, "", "B.java", "// café €\n")
	got, _ = mem.File("B.java")
	assert.Equal(t, "// café €\n", string(got))

	_, err = NewEncodingWriter(mem, "no-such-charset")
	require.ErrorIs(t, err, ErrUnsupportedCharset)
}

func TestDecoratorsSkipResources(t *testing.T) {
	mem := NewMemoryWriter()
	enc, err := NewEncodingWriter(NewPrologWriter(mem, "Generated."), "ISO-8859-1")
	require.NoError(t, err)
	put(t, enc, "com.acme", "app.properties", "name=caf\\u00e9\n")
	put(t, enc, "com.acme", "notes.txt", "café\n")
	require.NoError(t, enc.Close())

	got, _ := mem.File("com/acme/app.properties")
	assert.Equal(t, "name=caf\\u00e9\n", string(got))
	got, _ = mem.File("com/acme/notes.txt")
	assert.Equal(t, "café\n", string(got))
	assert.True(t, IsSource("Foo.java"))
	assert.False(t, IsSource("Foo.java.txt"))
}

func TestZipWriter(t *testing.T) {
	pack := func() []byte {
		var buf bytes.Buffer
		w := NewZipWriter(&buf)
		put(t, w, "com.acme", "Foo.java", "class Foo {}\n")
		put(t, w, "", "Main.java", "class Main {}\n")
		put(t, w, "com.acme", "app.properties", "a=b\n")
		require.NoError(t, w.Close())
		return buf.Bytes()
	}
	data := pack()
	require.Equal(t, data, pack())

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Main.java", "com/acme/Foo.java", "com/acme/app.properties"}, names)

	rc, err := zr.File[1].Open()
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "class Foo {}\n", string(content))

	w := NewZipWriter(io.Discard)
	put(t, w, "com.acme", "Foo.java", "")
	out, err := w.Open("com.acme", "Foo.java")
	require.NoError(t, err)
	require.Error(t, out.Close())
	require.NoError(t, w.Close())
}

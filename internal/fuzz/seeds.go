package fuzztests

import (
	"os"
	"path/filepath"
	"testing"
)

const maxFuzzInput = 16 << 10

var typeSeeds = []string{
	"int",
	"int[][]",
	"String",
	"java.util.List<String>",
	"java.util.Map<String, java.util.List<Integer>>",
	"java.util.List<? extends Number>",
	"java.util.List<? super Integer>[]",
	"java.util.List<?>",
	"java.util.Map.Entry<String, Integer>",
	"com.acme.Thing",
	"List<",
	"<>",
	"int<String>",
	"java..Foo",
	"? extends ? super int",
}

var descriptorSeeds = map[string]string{
	".toml": `package = "com.acme"
options = ["getter", "nosetter"]

[[classes]]
name = "Point"
fields = [{ name = "x", type = "int" }, { name = "tags", type = "String list" }]
`,
	".yaml": `package: com.acme
classes:
  - name: Shape
    abstract: true
  - name: Circle
    extends: Shape
    fields:
      - {name: radius, type: double}
      - {name: labels, type: "String[] map"}
`,
	".json": `{"package": "com.acme", "classes": [{"name": "A", "extends": "A", "fields": [{"name": "b", "type": "Unknown set"}]}]}`,
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}

// addModelSeeds adds the descriptor files under testdata/ when they exist.
func addModelSeeds(f *testing.F, ext string) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*"+ext))
	if err != nil {
		return
	}
	for _, path := range paths {
		// #nosec G304 -- path comes from a testdata glob
		src, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		f.Add(clamp(src))
	}
}

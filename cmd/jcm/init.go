package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jcodemodel/internal/project"
)

const sampleDescriptor = `# Classes generated into ./generated by "jcm gen".
package = "com.example.model"
options = ["getter", "setter"]

[[classes]]
name = "Animal"
abstract = true
options = ["final"]
fields = [
    { name = "born", type = "date" },
    { name = "id", type = "long" },
]

[[classes]]
name = "Dog"
extends = "Animal"
implements = ["java.io.Serializable"]
fields = [
    { name = "name", type = "String" },
    { name = "tricks", type = "String list" },
    { name = "good", type = "bool" },
]
`

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a jcm project with a sample descriptor",
		Long: `Create a jcm project: a jcm.toml manifest and model/example.toml.
If [dir] is omitted the current directory is used; a missing directory is
created.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create directory %q", target)
		}
	} else if !st.IsDir() {
		return errors.Newf("%q is not a directory", target)
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return errors.Newf("project already initialized: %s exists", manifestPath)
	}
	descriptorPath := filepath.Join(target, "model", "example.toml")
	if err := os.MkdirAll(filepath.Dir(descriptorPath), 0o755); err != nil {
		return errors.Wrap(err, "failed to create model directory")
	}
	if err := os.WriteFile(manifestPath, []byte(project.Sample), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", manifestPath)
	}
	created := []string{manifestPath}
	// an existing model directory keeps its descriptors
	if _, err := os.Stat(descriptorPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(descriptorPath, []byte(sampleDescriptor), 0o644); err != nil {
			return errors.Wrapf(err, "failed to write %s", descriptorPath)
		}
		created = append(created, descriptorPath)
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		out := cmd.OutOrStdout()
		for _, p := range created {
			fmt.Fprintf(out, "%s %s\n", color.GreenString("created"), p)
		}
		fmt.Fprintln(out, "run jcm gen to generate the sources")
	}
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/archview/archview/pkg/pipeline"
	"github.com/archview/archview/pkg/workspace"
)

// composeOpts holds the command-line flags for the compose command.
type composeOpts struct {
	container string   // focus container name (interactive picker if empty)
	output    string   // output file path (or base path for multiple formats)
	formats   []string // output formats: "dot", "svg", "png", "json"
	all       bool     // select every element instead of the focus components
	expand    bool     // add direct dependencies after selection
	detailed  bool     // show technology labels and descriptions
	noCache   bool     // bypass the artifact cache
	save      bool     // write the composed view back into the workspace file
}

// composeCommand creates the compose command for rendering component views.
//
// Default settings:
//   - formats: svg
//   - expand: false (only the focus container's components)
//   - output: derived from the workspace file name
func (c *CLI) composeCommand() *cobra.Command {
	var formatsStr string
	opts := composeOpts{}

	cmd := &cobra.Command{
		Use:   "compose [workspace.json]",
		Short: "Compose and render a component view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runCompose(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.container, "container", "c", "", "focus container name (interactive picker if omitted)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "include every element in the model")
	cmd.Flags().BoolVar(&opts.expand, "expand", false, "add direct dependencies of the selected components")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show technology labels and descriptions")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")
	cmd.Flags().BoolVar(&opts.save, "save", false, "write the composed view back into the workspace file")

	return cmd
}

// runCompose loads the workspace, composes the view, and renders it to the
// requested formats.
func (c *CLI) runCompose(ctx context.Context, input string, opts *composeOpts) error {
	logger := loggerFromContext(ctx)

	ws, err := workspace.ReadFile(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded workspace %q: %d containers", ws.Name, len(ws.Containers()))

	container := opts.container
	if container == "" {
		container, err = pickContainer(ws)
		if err != nil {
			return err
		}
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Container: container,
		All:       opts.all,
		Expand:    opts.expand,
		Detailed:  opts.detailed,
		Formats:   opts.formats,
	}

	prog := newProgress(logger)
	v, err := runner.Compose(ctx, ws, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Composed %q", v.Name()))
	printStats(len(v.Elements()), len(v.Relationships()), false)

	spin := newSpinnerWithContext(ctx, "Rendering "+strings.Join(opts.formats, ", "))
	spin.Start()
	artifacts, err := runner.Render(ctx, v, popts)
	if err != nil {
		spin.StopWithError(fmt.Sprintf("Rendering failed: %v", err))
		return err
	}
	spin.Stop()

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := base + "." + format
		if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		}
		if err := writeArtifact(path, artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	printSuccess("Rendered %d format(s)", len(opts.formats))

	if opts.save {
		if err := workspace.WriteFile(ws, input); err != nil {
			return err
		}
		printDetail("Saved view membership to %s", input)
	}
	return nil
}

// writeArtifact writes rendered bytes to path, creating parent directories
// as needed.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output carries a
// known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	for _, f := range pipeline.ValidFormats {
		if ext == "."+f {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

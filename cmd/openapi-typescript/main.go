package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/doordash/oapi-typescript/pkg/codegen"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

type rootOptions struct {
	output     string
	configFile string
	injectFile string
	headers    []string
	verbose    bool
	cfg        codegen.Configuration
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "openapi-typescript [flags] <input>...",
		Short: "Generate TypeScript types from OpenAPI 3.0/3.1 documents",
		Example: `  # Print the types of a local document
  openapi-typescript api.yaml

  # Write the types of a remote document to a file
  openapi-typescript https://example.com/api.yaml -o api.ts

  # Generate one file per input into a directory
  openapi-typescript 'specs/*.yaml' -o types`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRoot(cmd.Context(), opts, args)
			if err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "Output file, or directory when several inputs are given; stdout is default")
	f.StringVar(&opts.configFile, "config", "", "A YAML config file; flags override it")
	f.StringVar(&opts.injectFile, "inject-file", "", "File whose contents are injected after the helper declarations")
	f.StringArrayVar(&opts.headers, "header", nil, "HTTP header sent when fetching remote documents, as key:value")
	f.BoolVar(&opts.verbose, "verbose", false, "Log document loading to stderr")

	f.BoolVar(&opts.cfg.ExportType, "export-type", false, "Declare sections as type aliases instead of interfaces")
	f.BoolVar(&opts.cfg.PathParamsAsTypes, "path-params-as-types", false, "Use template literal keys for paths with parameters")
	f.BoolVar(&opts.cfg.ExclusiveUnions, "exclusive-unions", false, "Wrap oneOf/anyOf lists in the OneOf helper")
	f.BoolVar(&opts.cfg.ImmutableTypes, "immutable-types", false, "Mark every member and array readonly")
	f.BoolVar(&opts.cfg.DefaultNonNullable, "default-non-nullable", false, "Treat properties with a default as required")
	f.BoolVar(&opts.cfg.EmptyObjectsUnknown, "empty-objects-unknown", false, "Render objects without properties as unknown")
	f.BoolVar(&opts.cfg.AdditionalProperties, "additional-properties", false, "Allow unknown keys on every object with properties")
	f.BoolVar(&opts.cfg.Alphabetize, "alphabetize", false, "Sort object members by key")
	f.BoolVar(&opts.cfg.ExcludeDeprecated, "exclude-deprecated", false, "Leave out deprecated properties and operations")
	f.BoolVar(&opts.cfg.RootTypes, "root-types", false, "Export an alias for every root component")
	f.BoolVar(&opts.cfg.StrictRefs, "strict-refs", false, "Fail on dangling local references")

	return cmd
}

func runRoot(ctx context.Context, opts *rootOptions, args []string) error {
	cfg, err := loadConfiguration(opts)
	if err != nil {
		return err
	}

	inputs, err := expandInputs(args)
	if err != nil {
		return err
	}
	if len(inputs) > 1 && opts.output == "" {
		return fmt.Errorf("several inputs need an output directory (-o)")
	}
	if len(inputs) > 1 {
		if err := checkOutputNames(inputs); err != nil {
			return err
		}
	}

	results := make([]string, len(inputs))
	eg, ctx := errgroup.WithContext(ctx)
	for i, input := range inputs {
		i, input := i, input
		eg.Go(func() error {
			out, err := codegen.GenerateFromLocation(ctx, input, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			results[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	if len(inputs) == 1 {
		if opts.output == "" {
			_, err := os.Stdout.WriteString(results[0])
			return err
		}
		return writeOutput(opts.output, results[0])
	}

	if err := os.MkdirAll(opts.output, 0o755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	for i, input := range inputs {
		if err := writeOutput(filepath.Join(opts.output, outputName(input)), results[i]); err != nil {
			return err
		}
	}
	return nil
}

// loadConfiguration reads the config file and applies flags over it.
func loadConfiguration(opts *rootOptions) (codegen.Configuration, error) {
	cfg := codegen.NewDefaultConfiguration()

	if opts.configFile != "" {
		contents, err := os.ReadFile(opts.configFile)
		if err != nil {
			return cfg, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(contents, &cfg); err != nil {
			return cfg, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	flags := opts.cfg
	if opts.injectFile != "" {
		contents, err := os.ReadFile(opts.injectFile)
		if err != nil {
			return cfg, fmt.Errorf("error reading inject file: %w", err)
		}
		flags.Inject = string(contents)
	}

	if len(opts.headers) > 0 {
		flags.HTTPHeaders = make(map[string]string, len(opts.headers))
		for _, h := range opts.headers {
			k, v, ok := strings.Cut(h, ":")
			if !ok {
				return cfg, fmt.Errorf("invalid header %q, expected key:value", h)
			}
			flags.HTTPHeaders[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	flags.Logger = codegen.NewSlogAdapter(slog.New(handler))

	return cfg.OverwriteWith(flags), nil
}

// expandInputs expands glob patterns of local inputs. URLs are kept as is.
func expandInputs(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
			out = append(out, arg)
			continue
		}
		if !strings.ContainsAny(arg, "*?[") {
			out = append(out, arg)
			continue
		}
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		out = append(out, matches...)
	}
	return out, nil
}

func outputName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".ts"
}

// checkOutputNames fails when two inputs would be written to the same file.
func checkOutputNames(inputs []string) error {
	seen := make(map[string]string, len(inputs))
	for _, input := range inputs {
		name := outputName(input)
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("inputs %s and %s would both be written to %s", prev, input, name)
		}
		seen[name] = input
	}
	return nil
}

func writeOutput(path, contents string) error {
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("error writing file: %w", err)
	}
	return nil
}

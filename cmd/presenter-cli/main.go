package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	presenter "github.com/goliatone/go-presenter"
	"github.com/goliatone/go-presenter/pkg/openapi"
	"github.com/goliatone/go-presenter/pkg/record"
	"github.com/goliatone/go-presenter/pkg/render"
	"github.com/goliatone/go-presenter/pkg/renderers/htmlcard"
	"github.com/goliatone/go-presenter/pkg/renderers/plaintext"
	"github.com/goliatone/go-presenter/pkg/variantcfg"
)

func main() {
	schema := flag.String("schema", "", "OpenAPI document path or URL")
	definition := flag.String("definition", "", "component schema to instantiate")
	data := flag.String("data", "", "JSON or YAML file with attribute values")
	variantsDir := flag.String("variants", "", "directory of variant config files")
	variantName := flag.String("variant", "", "variant to present with (defaults to schema hints)")
	rendererName := flag.String("renderer", "plaintext", "renderer to use")
	output := flag.String("output", "", "output file (stdout if empty)")
	interactive := flag.Bool("interactive", false, "prompt for definition, variant, and renderer")
	flag.Parse()

	ctx := context.Background()

	if *schema == "" {
		log.Fatalf("missing required -schema flag")
	}
	src := parseSource(*schema)
	if src == nil {
		log.Fatalf("invalid schema source: %q", *schema)
	}

	loader := openapi.NewLoader(openapi.WithHTTPFallback(30 * time.Second))
	doc, err := loader.Load(ctx, src)
	if err != nil {
		log.Fatalf("Failed to load schema: %v", err)
	}

	defs, err := openapi.ParseDefinitions(ctx, doc)
	if err != nil {
		log.Fatalf("Failed to parse schema: %v", err)
	}
	if defs.Empty() {
		log.Fatalf("Schema %s declares no object components", doc.Location())
	}

	store := loadVariants(*variantsDir)

	registry := render.NewRegistry()
	registry.MustRegister(plaintext.New())
	card, err := htmlcard.New()
	if err != nil {
		log.Fatalf("Failed to configure html renderer: %v", err)
	}
	registry.MustRegister(card)

	defName := *definition
	variant := *variantName
	renderer := *rendererName
	if *interactive {
		defName, variant, renderer = prompt(defs, store, registry, defName, variant, renderer)
	}
	if defName == "" {
		log.Fatalf("missing -definition (schema declares: %s)", strings.Join(defs.Names(), ", "))
	}

	def, ok := defs.Definition(defName)
	if !ok {
		log.Fatalf("Definition %q not found (schema declares: %s)", defName, strings.Join(defs.Names(), ", "))
	}

	values, err := loadValues(*data)
	if err != nil {
		log.Fatalf("Failed to read values: %v", err)
	}

	rec, err := def.New(values)
	if err != nil {
		log.Fatalf("Failed to build record: %v", err)
	}

	spec, err := resolveVariant(def, store, variant)
	if err != nil {
		log.Fatalf("Failed to resolve variant: %v", err)
	}

	presented, err := presenter.New(rec, spec)
	if err != nil {
		log.Fatalf("Failed to present record: %v", err)
	}

	target, err := registry.Get(renderer)
	if err != nil {
		log.Fatalf("Unknown renderer (registered: %s): %v", strings.Join(registry.List(), ", "), err)
	}

	out, err := target.Render(ctx, presented, render.RenderOptions{Title: defName})
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Output written to %s\n", *output)
	} else {
		fmt.Println(string(out))
	}
}

func parseSource(raw string) openapi.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return openapi.SourceFromURL(path)
	}
	return openapi.SourceFromFile(path)
}

func loadVariants(dir string) *variantcfg.Store {
	if dir == "" {
		store, err := variantcfg.LoadFS(nil)
		if err != nil {
			log.Fatalf("Failed to initialise variant store: %v", err)
		}
		return store
	}
	store, err := variantcfg.LoadFS(os.DirFS(dir))
	if err != nil {
		log.Fatalf("Failed to load variants from %s: %v", dir, err)
	}
	return store
}

func loadValues(path string) (map[string]any, error) {
	if path == "" {
		return map[string]any{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	values := map[string]any{}
	// yaml.v3 parses JSON documents too, so one decoder covers both.
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return values, nil
}

// resolveVariant prefers a configured variant by name, falling back to the
// presenter hints carried on the schema definition.
func resolveVariant(def *record.Definition, store *variantcfg.Store, name string) (*presenter.Variant, error) {
	if name != "" {
		if v, ok := store.Variant(name); ok {
			return v, nil
		}
		return nil, errors.Newf("variant %q not found (declared: %s)", name, strings.Join(store.Names(), ", "))
	}
	return def.Variant()
}

func prompt(defs *openapi.Definitions, store *variantcfg.Store, registry *render.Registry, defName, variant, renderer string) (string, string, string) {
	if defName == "" {
		if err := survey.AskOne(&survey.Select{
			Message: "Definition:",
			Options: defs.Names(),
		}, &defName); err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}
	}

	if variant == "" && !store.Empty() {
		options := append([]string{"(schema hints)"}, store.Names()...)
		var choice string
		if err := survey.AskOne(&survey.Select{
			Message: "Variant:",
			Options: options,
		}, &choice); err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}
		if choice != "(schema hints)" {
			variant = choice
		}
	}

	if err := survey.AskOne(&survey.Select{
		Message: "Renderer:",
		Options: registry.List(),
		Default: renderer,
	}, &renderer); err != nil {
		log.Fatalf("Prompt failed: %v", err)
	}

	return defName, variant, renderer
}

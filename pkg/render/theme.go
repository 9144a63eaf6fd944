package render

import (
	"strings"

	"github.com/cockroachdb/errors"
	theme "github.com/goliatone/go-theme"
)

// ResolveTheme selects a theme and flattens its manifest into the renderer
// config renderers consume. Variant tokens, templates, and asset files
// override the base manifest's; fallbacks seed partials the manifest does not
// declare. Tokens double as CSS custom properties under a "--" prefix.
func ResolveTheme(selector theme.ThemeSelector, name, variant string, fallbacks map[string]string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, errors.New("render: theme selector is required")
	}

	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, errors.Wrapf(err, "render: select theme %q", name)
	}
	if selection == nil {
		return nil, errors.Newf("render: theme %q resolved to nothing", name)
	}

	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: copyStringMap(fallbacks),
	}

	manifest := selection.Manifest
	if manifest == nil {
		cfg.AssetURL = assetResolver("", nil)
		return cfg, nil
	}

	cfg.Tokens = copyStringMap(manifest.Tokens)
	overlayStringMap(&cfg.Partials, manifest.Templates)

	prefix := manifest.Assets.Prefix
	files := copyStringMap(manifest.Assets.Files)

	if variantManifest, ok := manifest.Variants[selection.Variant]; ok {
		overlayStringMap(&cfg.Tokens, variantManifest.Tokens)
		overlayStringMap(&cfg.Partials, variantManifest.Templates)
		if variantManifest.Assets.Prefix != "" {
			prefix = variantManifest.Assets.Prefix
		}
		overlayStringMap(&files, variantManifest.Assets.Files)
	}

	if len(cfg.Tokens) > 0 {
		cfg.CSSVars = make(map[string]string, len(cfg.Tokens))
		for key, value := range cfg.Tokens {
			cfg.CSSVars["--"+key] = value
		}
	}

	cfg.AssetURL = assetResolver(prefix, files)
	return cfg, nil
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" {
			return file
		}
		return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(file, "/")
	}
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func overlayStringMap(target *map[string]string, overrides map[string]string) {
	if len(overrides) == 0 {
		return
	}
	if *target == nil {
		*target = make(map[string]string, len(overrides))
	}
	for key, value := range overrides {
		(*target)[key] = value
	}
}

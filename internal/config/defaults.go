package config

var defaults = map[string]any{
	"log_level": "info",
	"listen":    DEFAULT_LISTEN,

	"allowed_networks": "",
	"base_url":         "",

	"window_days": 90,
	"cache_ttl":   "30s",

	"docs_file":     "./web/api_docs.md",
	"templates_dir": "./web/templates",
	"assets_dir":    "./web/assets",
	"logo_img":      "logo.png",
	"favicon_img":   "favicon.png",

	"storage.sqlite.path": "statuspage.db",
}

func Defaults() map[string]any {
	values := make(map[string]any)
	for k, v := range defaults {
		values[k] = v
	}
	return values
}

package config

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their
// meanings. This is the single source of truth for default values and
// generator output.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		// Core paths and conventions
		{Key: "data_dir", Default: defaultDataDir(), Comment: "Directory for local state: recent.db, window.json, inkmark.log"},
		{Key: "theme", Default: "dark", Comment: "Glamour style used for the preview pane (dark, light, dracula, notty, ...)"},
		{Key: "single_instance", Default: true, Comment: "Forward file arguments to an already-running instance"},

		{Key: "editor.default_view", Default: "edit", Comment: "Layout at startup: edit, preview or split"},
		{Key: "preview.max_width", Default: 100, Comment: "Upper bound on preview wrap width; 0 uses the pane width"},
		{Key: "recent.limit", Default: 10, Comment: "Entries shown in the open picker"},
	}
}

package config

// Config is the top-level configuration, corresponding to .dayone-archive.yml.
type Config struct {
	// ArchiveDir is the generated archive directory to serve and check.
	ArchiveDir string `yaml:"archive_dir" koanf:"archive_dir"`
	// BaseURL is the archive root all relative resource addresses resolve
	// against. Empty means the served origin root.
	BaseURL string `yaml:"base_url" koanf:"base_url"`
	// PhotoIndexURL is the photo index resource address, relative to the
	// archive root. Empty disables the lightbox entirely.
	PhotoIndexURL string `yaml:"photo_index_url" koanf:"photo_index_url"`
	// Port is the local server port.
	Port int `yaml:"port" koanf:"port"`
	// OpenBrowser opens the archive in the default browser on serve.
	OpenBrowser bool `yaml:"open_browser" koanf:"open_browser"`
	// LiveReload watches the archive directory and reloads connected pages
	// when the generator rewrites it.
	LiveReload bool `yaml:"live_reload" koanf:"live_reload"`
}

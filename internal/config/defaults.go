package config

// DefaultConfigFile is the conventional configuration file name.
const DefaultConfigFile = ".dayone-archive.yml"

// DefaultPhotoIndexURL matches where the generation pipeline writes the
// global photo index inside the archive.
const DefaultPhotoIndexURL = "entries/photo-index.json"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ArchiveDir:    "archive",
		PhotoIndexURL: DefaultPhotoIndexURL,
		Port:          8000,
		OpenBrowser:   true,
		LiveReload:    false,
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/manifoldco/promptui"
)

// detectArchiveDir checks the current directory for a generated archive.
func detectArchiveDir() string {
	for _, candidate := range []string{"archive", "."} {
		if _, err := os.Stat(filepath.Join(candidate, "index.html")); err == nil {
			return candidate
		}
	}
	return "archive"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .dayone-archive.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to dayone-archive! Let's configure your archive.")
	fmt.Println()

	detected := detectArchiveDir()

	// 1. Archive directory.
	dirPrompt := promptui.Prompt{
		Label:   "Archive directory",
		Default: detected,
	}
	archiveDir, err := dirPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("archive directory: %w", err)
	}

	// 2. Server port.
	portPrompt := promptui.Prompt{
		Label:   "Local server port",
		Default: "8000",
		Validate: func(s string) error {
			p, err := strconv.Atoi(s)
			if err != nil || p < 1 || p > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	// 3. Open browser on serve.
	openPrompt := promptui.Select{
		Label: "Open the browser when serving",
		Items: []string{"yes", "no"},
	}
	_, openStr, err := openPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("open browser: %w", err)
	}

	// 4. Live reload.
	reloadPrompt := promptui.Select{
		Label: "Reload open pages when the archive is regenerated",
		Items: []string{"no", "yes"},
	}
	_, reloadStr, err := reloadPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("live reload: %w", err)
	}

	cfg := &Config{
		ArchiveDir:    archiveDir,
		PhotoIndexURL: DefaultPhotoIndexURL,
		Port:          port,
		OpenBrowser:   openStr == "yes",
		LiveReload:    reloadStr == "yes",
	}

	if err := cfg.Save(DefaultConfigFile); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultConfigFile)
	return cfg, nil
}

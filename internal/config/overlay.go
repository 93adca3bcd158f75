// config/overlay.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// BoardsFile is the optional standalone list of ATS boards.
type BoardsFile struct {
	Greenhouse []Board `yaml:"greenhouse"`
	Lever      []Board `yaml:"lever"`
}

// OverlayBoards replaces the configured ATS boards with those from
// cfg.Jobs.BoardsFile, per provider, when that file lists any.
func OverlayBoards(cfg *Config) error {
	if cfg.Jobs.BoardsFile == "" {
		return nil
	}
	b, err := os.ReadFile(cfg.Jobs.BoardsFile)
	if err != nil {
		// a missing boards file should not kill the run
		return nil
	}

	var bf BoardsFile
	if err := yaml.Unmarshal(b, &bf); err != nil {
		return err
	}

	if len(bf.Greenhouse) > 0 {
		cfg.Jobs.Greenhouse = bf.Greenhouse
	}
	if len(bf.Lever) > 0 {
		cfg.Jobs.Lever = bf.Lever
	}
	return nil
}

// internal/config/config.go
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"visahunt/internal/domain"
)

//go:embed default.yml
var defaultYAML []byte

// Pause is a uniformly random delay in [Min, Max].
type Pause struct {
	Min time.Duration `yaml:"min"`
	Max time.Duration `yaml:"max"`
}

// Board is one hosted ATS job board.
type Board struct {
	Name     string `yaml:"name"`
	BoardURL string `yaml:"board_url"`
}

type SalesNav struct {
	Output         string          `yaml:"output"`
	LoginURL       string          `yaml:"login_url"`
	SearchURL      string          `yaml:"search_url"`
	ChromePath     string          `yaml:"chrome_path"`
	Regions        []domain.Region `yaml:"regions"`
	Keywords       []string        `yaml:"keywords"`
	RecruiterTerms []string        `yaml:"recruiter_terms"`
	MaxScrolls     int             `yaml:"max_scrolls"`
	MaxProfiles    int             `yaml:"max_profiles"`

	Timing struct {
		LoginWait    time.Duration `yaml:"login_wait"`
		AfterLogin   time.Duration `yaml:"after_login"`
		SearchSettle time.Duration `yaml:"search_settle"`
		ScrollPause  Pause         `yaml:"scroll_pause"`
		PeopleSettle time.Duration `yaml:"people_settle"`
		CompanyPause Pause         `yaml:"company_pause"`
	} `yaml:"timing"`
}

type Jobs struct {
	Output             string        `yaml:"output"`
	UserAgent          string        `yaml:"user_agent"`
	Roles              []string      `yaml:"roles"`
	Countries          []string      `yaml:"countries"`
	VisaPhrases        []string      `yaml:"visa_phrases"`
	MaxCards           int           `yaml:"max_cards"`
	Delay              time.Duration `yaml:"delay"`
	DescriptionTimeout time.Duration `yaml:"description_timeout"`
	SearchTimeout      time.Duration `yaml:"search_timeout"` // 0 = no timeout
	RequestsPerSecond  float64       `yaml:"requests_per_second"`
	BoardsFile         string        `yaml:"boards_file"`
	Greenhouse         []Board       `yaml:"greenhouse"`
	Lever              []Board       `yaml:"lever"`
}

type Config struct {
	SalesNav SalesNav `yaml:"salesnav"`
	Jobs     Jobs     `yaml:"jobs"`
}

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded default.yml: %v", err))
	}
	return cfg
}

// Load reads path on top of the defaults. An empty path yields the defaults.
// Lists present in the file replace the default lists wholesale.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

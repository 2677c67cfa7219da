package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"family-planner/internal/model"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "family_planner.db"
	DefaultReportTime     = "08:00"
)

// UserEntry describes one household member in the config file.
type UserEntry struct {
	Name  string `toml:"name"`
	PIN   string `toml:"pin"`
	Admin bool   `toml:"admin"`
}

// Config keeps runtime settings for the planner: where the snapshot store
// lives, when the daily report fires, who may sign in and which categories
// each PIN unlocks.
type Config struct {
	DBPath     string              `toml:"db_path"`
	ReportTime string              `toml:"report_time"`
	Users      []UserEntry         `toml:"users"`
	Access     map[string][]string `toml:"access"` // PIN -> category ids
}

// ResolveConfigPath returns the per-user config location, falling back to
// the working directory when the OS config dir is unknown.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "familyplanner", DefaultConfigFileName)
}

// LoadOrCreate reads the config file, writing one with defaults first if it
// does not exist yet. The returned config is always validated.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.ReportTime == "" {
		cfg.ReportTime = DefaultReportTime
	}
	return cfg, cfg.Validate()
}

// ModelUsers converts the configured entries into model users.
func (c Config) ModelUsers() []model.User {
	users := make([]model.User, 0, len(c.Users))
	for _, u := range c.Users {
		users = append(users, model.User{Name: u.Name, PIN: u.PIN, IsAdmin: u.Admin})
	}
	return users
}

// Validate rejects configs that could not have come from a sane install:
// missing users, malformed PINs, access entries pointing at unknown
// categories or unknown PINs.
func (c Config) Validate() error {
	if len(c.Users) == 0 {
		return fmt.Errorf("config: at least one user is required")
	}

	seenNames := make(map[string]struct{}, len(c.Users))
	pins := make(map[string]struct{}, len(c.Users))
	for _, u := range c.Users {
		name := strings.TrimSpace(u.Name)
		if name == "" {
			return fmt.Errorf("config: user with empty name")
		}
		lower := strings.ToLower(name)
		if _, dup := seenNames[lower]; dup {
			return fmt.Errorf("config: duplicate user name %q", u.Name)
		}
		seenNames[lower] = struct{}{}

		if !validPIN(u.PIN) {
			return fmt.Errorf("config: user %q: pin must be exactly 4 digits", u.Name)
		}
		pins[u.PIN] = struct{}{}
	}

	for pin, ids := range c.Access {
		if _, ok := pins[pin]; !ok {
			return fmt.Errorf("config: access entry for unknown pin %q", pin)
		}
		for _, id := range ids {
			if !model.ValidCategoryID(model.CategoryID(id)) {
				return fmt.Errorf("config: access entry for pin %q: unknown category %q", pin, id)
			}
		}
	}

	if _, err := time.Parse("15:04", c.ReportTime); err != nil {
		return fmt.Errorf("config: report_time %q: expected HH:MM", c.ReportTime)
	}

	return nil
}

func validPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func write(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:     DefaultDBName,
		ReportTime: DefaultReportTime,
		Users: []UserEntry{
			{Name: "Сергей", PIN: "1405", Admin: true},
			{Name: "Валерия", PIN: "1111", Admin: false},
		},
		Access: map[string][]string{
			"1405": {"home", "work", "shop", "other"},
			"1111": {"home", "shop", "other"},
		},
	}
}

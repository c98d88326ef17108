package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDataName       = ".todos.dat"
	DefaultDueSoonDays    = 2

	appDirName = "minitodo"
)

type Keymap struct {
	Quit           string `toml:"quit"`
	Add            string `toml:"add"`
	Up             string `toml:"up"`
	Down           string `toml:"down"`
	Toggle         string `toml:"toggle"`
	Delete         string `toml:"delete"`
	Edit           string `toml:"edit"`
	DueDate        string `toml:"due_date"`
	Category       string `toml:"category"`
	FilterCategory string `toml:"filter_category"`
	FilterStatus   string `toml:"filter_status"`
	Search         string `toml:"search"`
	Reset          string `toml:"reset"`
	Confirm        string `toml:"confirm"`
	Cancel         string `toml:"cancel"`
}

type Config struct {
	DataPath      string `toml:"data_path"`
	LogPath       string `toml:"log_path"`
	LogLevel      string `toml:"log_level"`
	DefaultFilter string `toml:"default_filter"`
	ConfirmDelete bool   `toml:"confirm_delete"`
	DueSoonDays   int    `toml:"due_soon_days"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath returns the per-user config file location, or
// config.toml in the working directory when no user config dir is known.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDirName, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there first
// if the file does not exist. Fields missing from the file keep their
// default values.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	normalize(&cfg)
	return cfg, nil
}

func write(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
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

func Default() Config {
	return Config{
		DataPath:      DefaultDataName,
		LogPath:       "",
		LogLevel:      "info",
		DefaultFilter: "all",
		ConfirmDelete: false,
		DueSoonDays:   DefaultDueSoonDays,
		Keys: Keymap{
			Quit:           "q",
			Add:            "a",
			Up:             "k",
			Down:           "j",
			Toggle:         " ",
			Delete:         "d",
			Edit:           "e",
			DueDate:        "D",
			Category:       "c",
			FilterCategory: "C",
			FilterStatus:   "f",
			Search:         "/",
			Reset:          "r",
			Confirm:        "enter",
			Cancel:         "esc",
		},
	}
}

func normalize(cfg *Config) {
	def := Default()
	if strings.TrimSpace(cfg.DataPath) == "" {
		cfg.DataPath = def.DataPath
	}
	cfg.DataPath = expandHome(cfg.DataPath)
	cfg.LogPath = expandHome(strings.TrimSpace(cfg.LogPath))
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = def.LogLevel
	}
	switch f := strings.ToLower(strings.TrimSpace(cfg.DefaultFilter)); f {
	case "all", "pending", "done":
		cfg.DefaultFilter = f
	default:
		cfg.DefaultFilter = def.DefaultFilter
	}
	if cfg.DueSoonDays < 0 {
		cfg.DueSoonDays = def.DueSoonDays
	}

	keys := []struct {
		got  *string
		want string
	}{
		{&cfg.Keys.Quit, def.Keys.Quit},
		{&cfg.Keys.Add, def.Keys.Add},
		{&cfg.Keys.Up, def.Keys.Up},
		{&cfg.Keys.Down, def.Keys.Down},
		{&cfg.Keys.Toggle, def.Keys.Toggle},
		{&cfg.Keys.Delete, def.Keys.Delete},
		{&cfg.Keys.Edit, def.Keys.Edit},
		{&cfg.Keys.DueDate, def.Keys.DueDate},
		{&cfg.Keys.Category, def.Keys.Category},
		{&cfg.Keys.FilterCategory, def.Keys.FilterCategory},
		{&cfg.Keys.FilterStatus, def.Keys.FilterStatus},
		{&cfg.Keys.Search, def.Keys.Search},
		{&cfg.Keys.Reset, def.Keys.Reset},
		{&cfg.Keys.Confirm, def.Keys.Confirm},
		{&cfg.Keys.Cancel, def.Keys.Cancel},
	}
	for _, k := range keys {
		if *k.got == "" {
			*k.got = k.want
		}
	}
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

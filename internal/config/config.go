package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "todo.db"
	DefaultDataDir        = "data"
	DefaultLogName        = "tagdo.log"

	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "TAGDO_CONFIG"
)

type Keymap struct {
	Quit        string `toml:"quit"`
	Add         string `toml:"add"`
	Up          string `toml:"up"`
	Down        string `toml:"down"`
	Toggle      string `toml:"toggle"`
	Delete      string `toml:"delete"`
	Detail      string `toml:"detail"`
	Confirm     string `toml:"confirm"`
	Cancel      string `toml:"cancel"`
	Edit        string `toml:"edit"`
	Grab        string `toml:"grab"`
	Filter      string `toml:"filter"`
	FilterReset string `toml:"filter_reset"`
	NextField   string `toml:"next_field"`
	PrevField   string `toml:"prev_field"`
}

type Config struct {
	Storage       string   `toml:"storage"`
	DBPath        string   `toml:"db_path"`
	DataDir       string   `toml:"data_dir"`
	LogFile       string   `toml:"log_file"`
	LogLevel      string   `toml:"log_level"`
	DefaultFilter string   `toml:"default_filter"`
	Tags          []string `toml:"tags"`
	DefaultTag    string   `toml:"default_tag"`
	Keys          Keymap   `toml:"keys"`
}

// ResolveConfigPath returns $TAGDO_CONFIG, else config.toml under the user
// config dir, else config.toml in the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "tagdo", DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there first
// when the file does not exist. Relative paths inside the config are
// resolved against the config file's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.fillDefaults()
	return cfg.resolve(filepath.Dir(path)), nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Storage == "" {
		c.Storage = def.Storage
	}
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.DefaultFilter == "" {
		c.DefaultFilter = def.DefaultFilter
	}
	if len(c.Tags) == 0 {
		c.Tags = def.Tags
	}
	if !slices.Contains(c.Tags, c.DefaultTag) {
		c.DefaultTag = c.Tags[0]
	}
	c.Keys.fillDefaults(def.Keys)
}

func (k *Keymap) fillDefaults(def Keymap) {
	fields := []struct {
		v *string
		d string
	}{
		{&k.Quit, def.Quit}, {&k.Add, def.Add}, {&k.Up, def.Up}, {&k.Down, def.Down},
		{&k.Toggle, def.Toggle}, {&k.Delete, def.Delete}, {&k.Detail, def.Detail},
		{&k.Confirm, def.Confirm}, {&k.Cancel, def.Cancel}, {&k.Edit, def.Edit},
		{&k.Grab, def.Grab}, {&k.Filter, def.Filter}, {&k.FilterReset, def.FilterReset},
		{&k.NextField, def.NextField}, {&k.PrevField, def.PrevField},
	}
	for _, f := range fields {
		if *f.v == "" {
			*f.v = f.d
		}
	}
}

func (c Config) resolve(dir string) Config {
	c.DBPath = resolvePath(dir, c.DBPath)
	c.DataDir = resolvePath(dir, c.DataDir)
	c.LogFile = resolvePath(dir, c.LogFile)
	return c
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Default returns the configuration written on first launch.
func Default() Config {
	return Config{
		Storage:       "sqlite",
		DBPath:        DefaultDBName,
		DataDir:       DefaultDataDir,
		LogFile:       DefaultLogName,
		LogLevel:      "info",
		DefaultFilter: "all",
		Tags:          []string{"Work", "Study", "Personal", "Health", "Shopping"},
		DefaultTag:    "Work",
		Keys: Keymap{
			Quit:        "q",
			Add:         "a",
			Up:          "k",
			Down:        "j",
			Toggle:      " ",
			Delete:      "d",
			Detail:      "enter",
			Confirm:     "enter",
			Cancel:      "esc",
			Edit:        "e",
			Grab:        "m",
			Filter:      "f",
			FilterReset: "F",
			NextField:   "tab",
			PrevField:   "shift+tab",
		},
	}
}

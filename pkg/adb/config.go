package adb

import (
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// Config holds values read from ~/.config/goadb/config.ini, layered
// under CLI flags and ADB_ADDRESS (flags > env > ini file > built-in
// default, per SPEC_FULL.md §4.6).
type Config struct {
	Host        string
	Port        int
	ChunkSizeKB int
}

// DefaultConfigPath returns ~/.config/goadb/config.ini, or an empty
// string if the home directory cannot be determined.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "goadb", "config.ini")
}

// LoadConfig reads path if it exists; a missing file yields a zero-value
// Config rather than an error, since the config file is entirely
// optional.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return cfg, err
	}

	server := file.Section("server")
	cfg.Host = server.Key("host").String()
	if port, err := server.Key("port").Int(); err == nil {
		cfg.Port = port
	}

	syncSection := file.Section("sync")
	if chunk, err := syncSection.Key("chunk_size_kb").Int(); err == nil {
		cfg.ChunkSizeKB = chunk
	}

	return cfg, nil
}

package config

// Config is the top-level YAML structure.
type Config struct {
	Grid   GridConf   `yaml:"grid"`
	Search SearchConf `yaml:"search"`
	Server ServerConf `yaml:"server"`
	Log    LogConf    `yaml:"log"`
}

// GridConf describes the grid served by the application.
type GridConf struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	File   string `yaml:"file"`
	Watch  bool   `yaml:"watch"`
}

// SearchConf holds engine settings.
type SearchConf struct {
	Selection string `yaml:"selection"` // "first" or "lowest"
	Workers   int    `yaml:"workers"`
	MaxBatch  int    `yaml:"max_batch"`
}

// ServerConf holds HTTP settings.
type ServerConf struct {
	Addr           string `yaml:"addr"`
	ReadTimeoutMs  int    `yaml:"read_timeout_ms"`
	WriteTimeoutMs int    `yaml:"write_timeout_ms"`
	MaxSessions    int    `yaml:"max_sessions"`
}

// LogConf selects the slog handler.
type LogConf struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

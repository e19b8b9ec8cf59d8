package config

// Settingsfile represents the structure of the tsbuild.yaml settings file.
// Every field is optional; zero values fall back to domain.DefaultSettings.
type Settingsfile struct {
	Version       string   `yaml:"version"`
	Compiler      []string `yaml:"compiler"`
	AliasResolver []string `yaml:"aliasResolver"`
	Concurrency   int      `yaml:"concurrency"`
	KillTimeout   string   `yaml:"killTimeout"`
	Debounce      string   `yaml:"debounce"`
	ReadyTimeout  string   `yaml:"readyTimeout"`
	OutputMode    string   `yaml:"outputMode"`
}

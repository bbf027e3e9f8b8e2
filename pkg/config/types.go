package config

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

var Themes = []Theme{ThemeLight, ThemeDark, ThemeSystem}

type Config struct {
	App    AppConfig    `toml:"app"`
	Server ServerConfig `toml:"server"`
	Build  BuildConfig  `toml:"build"`
	Dev    DevConfig    `toml:"dev"`
}

type AppConfig struct {
	Title            string `toml:"title"`
	Theme            Theme  `toml:"theme"`
	SidebarCollapsed bool   `toml:"sidebarCollapsed"`
	// StartPath is the fragment the app lands on when none is set.
	StartPath string `toml:"startPath"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type BuildConfig struct {
	OutDir   string `toml:"outDir"`
	WasmFile string `toml:"wasmFile"`
}

type DevConfig struct {
	Watch      []string `toml:"watch"`
	DebounceMs int      `toml:"debounceMs"`
}

func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Title:     "Trackly",
			Theme:     ThemeLight,
			StartPath: "/dashboard",
		},
		Server: ServerConfig{
			Port: 4322,
			Host: "localhost",
		},
		Build: BuildConfig{
			OutDir:   "./dist",
			WasmFile: "trackly.wasm",
		},
		Dev: DevConfig{
			DebounceMs: 100,
		},
	}
}

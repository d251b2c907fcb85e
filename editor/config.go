package editor

// Config is the editor service's environment.
type Config struct {
	Addr           string   `env:"BINSORT_EDITOR_ADDR" envDefault:":3001"`
	TexturesDir    string   `env:"BINSORT_TEXTURES_DIR" envDefault:"public/textures"`
	ModelsDir      string   `env:"BINSORT_MODELS_DIR" envDefault:"src/models"`
	// AllowedOrigins limits CORS and websocket origins. Empty means any origin.
	AllowedOrigins []string `env:"BINSORT_EDITOR_ORIGINS" envSeparator:","`
	LogLevel       string   `env:"BINSORT_LOG_LEVEL" envDefault:"info"`
}

package config

// Config contains all the configuration for the application
type Config struct {
	// Core settings
	OutputDir string
	AppName   string
	Debug     bool

	// AppMap metadata settings
	TestFramework        string
	TestFrameworkVersion string

	// Rendering settings
	ValueLimit int // max length of rendered parameter values

	// Profile upload settings
	PyroscopeURL string
	AuthToken    string
	RateHz       int
}

// NewDefault returns a new default config
func NewDefault() *Config {
	return &Config{
		OutputDir:            "tmp/appmap",
		AppName:              "appScope",
		TestFramework:        "pytest",
		TestFrameworkVersion: "5.3.5",
		ValueLimit:           100,
		RateHz:               400,
	}
}

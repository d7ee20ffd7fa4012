package config

const (
	defaultConfigPath       = "~/.config/catalogage/config.toml"
	projectConfigName       = "catalogage.toml"
	databaseFileName        = "catalog.db"
	lockFileName            = "catalogage.lock"
	defaultDataDir          = "~/.local/share/catalogage"
	defaultLogDir           = "~/.local/share/catalogage/logs"
	defaultLookupBaseURL    = "https://www.googleapis.com/books/v1"
	defaultLookupTimeout    = 10
	defaultLookupRate       = 2.0
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultSwitchPolicy     = SwitchPolicyCommit
	lookupAPIKeyEnv         = "GOOGLE_BOOKS_API_KEY"
	maxLookupTimeoutSeconds = 300
	maxLookupRequestsPerSec = 100.0
)

// Switch policies for the inline edit controller.
const (
	SwitchPolicyCommit = "commit"
	SwitchPolicyCancel = "cancel"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Lookup: Lookup{
			Enabled:           true,
			BaseURL:           defaultLookupBaseURL,
			TimeoutSeconds:    defaultLookupTimeout,
			RequestsPerSecond: defaultLookupRate,
		},
		Editing: Editing{
			SwitchPolicy: defaultSwitchPolicy,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

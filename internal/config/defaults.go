package config

const (
	defaultServerURL             = "http://127.0.0.1:8020"
	defaultRequestTimeoutSeconds = 60
	defaultDataDir               = "~/.local/share/scribe"
	defaultLogDir                = "~/.local/share/scribe/logs"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultNotifyTimeoutSeconds  = 10
)

// Default returns the repository default configuration.
func Default() Config {
	return Config{
		Server: Server{
			URL:            defaultServerURL,
			RequestTimeout: defaultRequestTimeoutSeconds,
		},
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeoutSeconds,
		},
	}
}

package config

const (
	defaultDataDir         = "~/.local/share/steamsync"
	defaultLogDir          = "~/.local/share/steamsync/logs"
	defaultAppListURL      = "https://api.steampowered.com/ISteamApps/GetAppList/v2/"
	defaultAppDetailsURL   = "https://store.steampowered.com/api/appdetails"
	defaultAchievementsURL = "https://api.steampowered.com/ISteamUserStats/GetGlobalAchievementPercentagesForApp/v2/"
	defaultRequestTimeout  = 30
	defaultRateLimit       = 1.0
	defaultRateBurst       = 1
	defaultBatchSize       = 25
	defaultConcurrency     = 5
	defaultStaleDays       = 3
	defaultMinBatchDelay   = 5
	defaultPerResultDelay  = 400
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Steam: Steam{
			AppListURL:      defaultAppListURL,
			AppDetailsURL:   defaultAppDetailsURL,
			AchievementsURL: defaultAchievementsURL,
			RequestTimeout:  defaultRequestTimeout,
			RateLimit:       defaultRateLimit,
			RateBurst:       defaultRateBurst,
		},
		Pipeline: Pipeline{
			BatchSize:            defaultBatchSize,
			Concurrency:          defaultConcurrency,
			StaleDays:            defaultStaleDays,
			MinBatchDelaySeconds: defaultMinBatchDelay,
			PerResultDelayMillis: defaultPerResultDelay,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

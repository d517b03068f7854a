package service

// SunsetSentinel requests the light-on time be resolved from today's sunset.
const SunsetSentinel = "sunset"

type SettingsParams struct {
	UserTemp      float64 // fan-on threshold
	UserLight     string  // "HH:MM:SS" | "sunset"
	LightDuration string  // TimeSpec, e.g. "1h30m"; ignored for sunset
}

type ReadingParams struct {
	Temperature float64
	Presence    string         // "1" means present
	Extra       map[string]any // stored alongside the reading
}

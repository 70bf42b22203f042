package config

type MapsConfig struct {
	// GoogleAPIKey enables address geocoding at merchant registration.
	// Empty disables the geocoder; registrations then keep whatever
	// coordinates the caller supplied.
	GoogleAPIKey string `yaml:"google_api_key"`
}

func loadMapsConfig() *MapsConfig {
	return &MapsConfig{
		GoogleAPIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
	}
}

package utils

import "solbooking/config"

// IsProduction reports whether the service runs with a production profile.
func IsProduction() bool {
	return config.IsProduction()
}

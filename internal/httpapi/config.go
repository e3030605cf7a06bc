package httpapi

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
// Default remains 1 MiB.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// corsAllowedOrigins defaults to fully permissive: the original deployment
// served browser eval harnesses from arbitrary origins.
var corsAllowedOrigins = []string{"*"}

// SetCORSOrigins overrides the allowed origins ("*" by default).
func SetCORSOrigins(origins []string) {
	if len(origins) == 0 {
		corsAllowedOrigins = []string{"*"}
		return
	}
	corsAllowedOrigins = append([]string(nil), origins...)
}

func corsOrigins() []string {
	return append([]string(nil), corsAllowedOrigins...)
}

// Package config loads the stdmath CLI configuration.
//
// Values come from built-in defaults, an optional stdmath.yml (searched in
// "." and "./config", or given explicitly), an optional .env file, and
// environment variables with the STDMATH_ prefix, in increasing order of
// precedence. Nested keys map to underscores:
//
//	STDMATH_MATH_TYPE=i32
//	STDMATH_TELEMETRY_ENABLED=true
//
// # Usage
//
//	cfg, err := config.Load(config.WithConfigFile("stdmath.yml"))
package config

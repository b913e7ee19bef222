// Package config loads typed configuration from environment variables.
//
// It combines github.com/joho/godotenv, which reads optional .env files into
// the process environment, with github.com/caarlos0/env/v11, which parses
// the environment into structs annotated with `env` and `envDefault` tags.
// Each configuration type is parsed once and cached for the lifetime of the
// process.
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Errors wrap the sentinels in errors.go and can be checked with errors.Is.
// Tests that change the environment between loads call ResetCache.
package config

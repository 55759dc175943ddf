package config

// ResolveCredential exports resolveCredential for testing.
var ResolveCredential = resolveCredential //nolint:gochecknoglobals // test export

// Validate exports validate for testing.
var Validate = validate //nolint:gochecknoglobals // test export

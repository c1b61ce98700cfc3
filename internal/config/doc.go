// Package config loads, merges, and validates configuration for the
// memodeck server and client binaries.
//
// Values are merged with mergo in priority order: environment variables
// win over command-line flags, flags over the JSON config file, and
// defaults fill whatever remains unset.
//
// [GetStructuredConfig] builds the server configuration and
// [GetClientConfig] the client view with the sync engine knobs
// (auto-sync, interval, batch size, retry limit, network restriction).
package config

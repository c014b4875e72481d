// Package config centralises the planner's runtime knobs behind a
// functional-options constructor, mirroring builder.BuilderOption /
// newBuilderConfig: a Config struct with sane defaults, a public Option
// type, and New(opts...) applying them in order. cmd/vstp and
// cmd/routesvc populate it from CLI flags, then layer environment
// variable overrides (VSTP_*) on top via FromEnv.
package config

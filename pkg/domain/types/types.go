package types

// AppName is the canonical binary name
const AppName = "linear-release"

// Version is injected at build time via -ldflags
var Version = "dev"

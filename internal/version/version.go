package version

// BuildDate and GoVersion are injected at build time via ldflags.
var (
	AppName        = "Mirror"
	AppDescription = "A Discord bot that reflects how you talk back at you"
	AppVersion     = "0.1.0"
	BuildDate      = ""
	GoVersion      = ""
)

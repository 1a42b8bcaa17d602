package cli

// Default values for CLI flags and formatted output.
const (
	// TabWidth is the width of tabs in formatted output.
	TabWidth = 2
	// DotEnvFile holds environment defaults next to the working directory.
	DotEnvFile = ".env"
)

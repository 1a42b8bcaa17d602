package hooks

// HookType represents the type of hook.
type HookType string

// Supported hook types.
const (
	// PreDownload runs before the transfer tool is started.
	PreDownload HookType = "pre-download"
	// PostDownload runs in the completion callback after the descriptor is written.
	PostDownload HookType = "post-download"
)

// Hook represents a hook script with its type and content.
type Hook struct {
	Type    HookType
	Content string
}

// HookContext contains information passed to hooks.
type HookContext struct {
	FilePath       string
	AreaName       string
	Hash           string
	URLs           []string
	DescriptorPath string
	Vars           map[string]interface{}
}

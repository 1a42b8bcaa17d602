package hooks

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cperrin88/geofetch/pkg/errors"
)

// HookFileExtension is the extension of hook script files.
const HookFileExtension = ".tengo"

// LoadHookFile registers the script at path as hookType.
func LoadHookFile(manager HookManager, hookType HookType, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.ErrHookLoad, "%s: %v", path, err)
	}
	return manager.AddHook(Hook{Type: hookType, Content: string(content)})
}

// LoadHooksFromDir registers every <hook-type>.tengo file of dir. A missing
// directory has no hooks.
func LoadHooksFromDir(manager HookManager, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "failed to read hooks directory %s", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != HookFileExtension {
			continue
		}

		hookType := HookType(strings.TrimSuffix(entry.Name(), HookFileExtension))
		switch hookType {
		case PreDownload, PostDownload:
		default:
			return ErrUnsupportedHookType(string(hookType))
		}

		if err := LoadHookFile(manager, hookType, filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

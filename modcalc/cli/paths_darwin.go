package cli

import "path/filepath"

func (a appPaths) ConfigDir() string {
	return filepath.Join(a.home, "Library", "Application Support", a.tag)
}

func (a appPaths) LogDir() string {
	return filepath.Join(a.home, "Library", "Logs", a.tag)
}

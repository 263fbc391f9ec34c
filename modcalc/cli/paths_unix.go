//go:build aix || dragonfly || freebsd || (js && wasm) || linux || netbsd || openbsd || solaris
// +build aix dragonfly freebsd js,wasm linux netbsd openbsd solaris

package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Follows the XDG conventions as far as package os knows them.

func (a appPaths) ConfigDir() string {
	c, err := os.UserConfigDir()
	if err != nil {
		c = filepath.Join(a.home, ".config")
	}
	return filepath.Join(c, strings.ToLower(a.tag))
}

func (a appPaths) LogDir() string {
	c, err := os.UserCacheDir()
	if err != nil {
		c = filepath.Join(a.home, ".cache")
	}
	return filepath.Join(c, strings.ToLower(a.tag), "logs")
}

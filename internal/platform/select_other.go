//go:build !windows

package platform

import "github.com/go-logr/logr"

func newManager(goos string, log logr.Logger) Manager {
	if goos == "darwin" {
		return newDarwinManager(log)
	}
	return newLinuxManager(log)
}

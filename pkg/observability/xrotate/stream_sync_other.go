//go:build !linux

package xrotate

import "os"

func syncData(f *os.File) error {
	return f.Sync()
}

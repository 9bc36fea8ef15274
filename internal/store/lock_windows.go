//go:build windows

package store

// fileLock is a no-op on Windows. Saves are still atomic via rename.
type fileLock struct{}

func acquireLock(path string) (*fileLock, error) {
	return &fileLock{}, nil
}

func (l *fileLock) release() error {
	return nil
}

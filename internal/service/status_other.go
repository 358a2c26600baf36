//go:build !windows

package service

func status(name string) (string, error) {
	return "", ErrUnsupported
}

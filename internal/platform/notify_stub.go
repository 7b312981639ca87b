//go:build !linux && !darwin && !windows

package platform

func Notify(string, string, Options) error { return nil }

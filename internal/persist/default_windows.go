//go:build windows

package persist

// Default returns the registry-backed store. Options only affect rc-file
// platforms.
func Default(Options) (Store, error) {
	return newRegistry(openEnvironmentKey, broadcastSettingChange), nil
}

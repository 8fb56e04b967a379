//go:build windows

package persist

import (
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const (
	hwndBroadcast    = 0xffff
	wmSettingChange  = 0x001A
	smtoAbortIfHung  = 0x0002
	broadcastTimeout = 5000
)

var procSendMessageTimeout = windows.NewLazySystemDLL("user32.dll").NewProc("SendMessageTimeoutW")

func openEnvironmentKey() (registryKey, error) {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, environmentSubkey, registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return nil, err
	}
	return k, nil
}

// broadcastSettingChange tells running programs that the user environment
// changed.
func broadcastSettingChange() error {
	param, err := windows.UTF16PtrFromString(environmentSubkey)
	if err != nil {
		return err
	}
	if err := procSendMessageTimeout.Find(); err != nil {
		return err
	}
	ret, _, callErr := procSendMessageTimeout.Call(
		hwndBroadcast,
		wmSettingChange,
		0,
		uintptr(unsafe.Pointer(param)),
		smtoAbortIfHung,
		broadcastTimeout,
		0,
	)
	if ret == 0 {
		return callErr
	}
	return nil
}

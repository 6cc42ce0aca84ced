//go:build darwin

package permissions

/*
#cgo LDFLAGS: -framework AVFoundation
#import <AVFoundation/AVFoundation.h>

int checkMicrophonePermission() {
    AVAuthorizationStatus status = [AVCaptureDevice authorizationStatusForMediaType:AVMediaTypeAudio];
    return (int)status;
}

void requestMicrophonePermission() {
    [AVCaptureDevice requestAccessForMediaType:AVMediaTypeAudio completionHandler:^(BOOL granted) {}];
}
*/
import "C"

import (
	"fmt"

	"github.com/GiaredL/audioviz/internal/audio"
)

const (
	permissionNotDetermined = 0
	permissionRestricted    = 1
	permissionDenied        = 2
	permissionAuthorized    = 3
)

// EnsureMicrophone checks the macOS microphone permission and triggers the
// system prompt when it has never been asked. A denied permission is
// reported as audio.ErrPermissionDenied; capture then degrades to silence.
func EnsureMicrophone() error {
	status := int(C.checkMicrophonePermission())
	switch status {
	case permissionAuthorized:
		return nil
	case permissionNotDetermined:
		C.requestMicrophonePermission()
		return fmt.Errorf("%w: awaiting user approval", audio.ErrPermissionDenied)
	default:
		return fmt.Errorf("%w: enable it in System Settings > Privacy & Security > Microphone", audio.ErrPermissionDenied)
	}
}

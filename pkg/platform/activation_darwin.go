//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa
#import <Cocoa/Cocoa.h>

int
SetActivationPolicy(void) {
    [NSApp setActivationPolicy:NSApplicationActivationPolicyAccessory];
    return 0;
}
*/
import "C"
import "log"

// SetActivationPolicy hides the dock icon so the app lives in the menu bar
// tray only. Called when the window hides on close.
func SetActivationPolicy() {
	log.Println("Switching to accessory activation policy")
	C.SetActivationPolicy()
}

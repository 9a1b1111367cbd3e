package courier

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Platform is the mobile OS a push token belongs to.
type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
	PlatformUnknown Platform = "unknown"
)

// Device is a push-notification endpoint registered by a courier's app.
// A courier may own several devices; (courier, push token) is unique.
type Device struct {
	CourierID kernel.UUID
	PushToken string
	Platform  Platform
}

func NewDevice(courierID kernel.UUID, pushToken string, platform string) (Device, error) {
	d := Device{CourierID: courierID, PushToken: strings.TrimSpace(pushToken)}

	var tokenErr error
	if d.PushToken == "" {
		tokenErr = errs.NewValueIsRequiredError("pushToken")
	}

	var platformErr error
	d.Platform, platformErr = parsePlatform(platform)

	if err := errors.Join(courierID.Validate(), tokenErr, platformErr); err != nil {
		return Device{}, err
	}
	return d, nil
}

func parsePlatform(s string) (Platform, error) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformAndroid:
		return PlatformAndroid, nil
	case PlatformIOS:
		return PlatformIOS, nil
	case "", PlatformUnknown:
		return PlatformUnknown, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("platform", fmt.Errorf("%q is not supported", s))
	}
}

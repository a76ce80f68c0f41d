package platform

// AppName is the application name reported to the notification service.
const AppName = "CropView"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// TimeoutMS is how long the notification stays visible. Zero uses 5s.
	TimeoutMS int32
}

func (o Options) timeout() int32 {
	if o.TimeoutMS > 0 {
		return o.TimeoutMS
	}
	return 5000
}

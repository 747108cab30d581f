// Package refresh fires the signals that make Windows notice a changed
// profile association. Each method is independently toggleable and
// independently fault-tolerant.
package refresh

// Method identifies one refresh signal.
type Method string

const (
	MethodDisplaySettings   Method = "display_settings"
	MethodBroadcastColor    Method = "broadcast_color"
	MethodInvalidate        Method = "invalidate"
	MethodCalibrationLoader Method = "calibration_loader"
)

// Refresher fires a single refresh method. Implementations return an error
// instead of panicking; a failed method never blocks the others.
type Refresher interface {
	Refresh(method Method) error
}

// Failure pairs a method with the error it produced.
type Failure struct {
	Method Method
	Err    error
}

// Enabled builds the method list from the four config toggles, in the order
// they are applied.
func Enabled(displaySettings, broadcastColor, invalidate, calibrationLoader bool) []Method {
	var methods []Method
	if displaySettings {
		methods = append(methods, MethodDisplaySettings)
	}
	if broadcastColor {
		methods = append(methods, MethodBroadcastColor)
	}
	if invalidate {
		methods = append(methods, MethodInvalidate)
	}
	if calibrationLoader {
		methods = append(methods, MethodCalibrationLoader)
	}
	return methods
}

// Apply fires every method in order, collecting failures. A failing method
// does not stop the remaining ones.
func Apply(r Refresher, methods []Method) []Failure {
	var failures []Failure
	for _, m := range methods {
		if err := r.Refresh(m); err != nil {
			failures = append(failures, Failure{Method: m, Err: err})
		}
	}
	return failures
}

package component

type Camera struct {
	TargetName string
	Zoom       float64
	Smoothness float64
	LookOffset float64
}

var CameraComponent = NewComponent[Camera]()

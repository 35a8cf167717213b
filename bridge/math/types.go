package math

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float64
}

// Quaternion represents a rotational orientation.
type Quaternion struct {
	X, Y, Z, W float64
}

// Mat4 is a 4x4 column-major matrix, used for object transformations.
type Mat4 struct {
	Data [16]float64
}

// Extents3D represents the axis-aligned bounds of a 3d object.
type Extents3D struct {
	Min Vec3
	Max Vec3
}

// Transform represents the placement of an object in the world.
// The fields should not be edited directly; use the setters so the
// cached local matrix is regenerated.
type Transform struct {
	Position Vec3
	Rotation Quaternion
	Scale    Vec3

	Local   Mat4
	IsDirty bool
}

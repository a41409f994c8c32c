package accessor

// Accessor reads and writes named properties.
type Accessor interface {
	// Get returns the value of property prop of obj.
	Get(obj any, prop string) (any, error)
	// Set stores value into property prop of obj, which must be a pointer
	// to a struct or a string-keyed map.
	Set(obj any, prop string, value any) error
	IsReadable(obj any, prop string) bool
	IsWritable(obj any, prop string) bool
}

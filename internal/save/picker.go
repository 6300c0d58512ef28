package save

import "context"

// Grant is the answer of a DirectoryPicker. URI is a file:// URI and is
// only meaningful when Granted is true.
type Grant struct {
	URI     string
	Granted bool
}

// DirectoryPicker asks the user for a folder to keep reports in
type DirectoryPicker interface {
	PickDirectory(ctx context.Context) (Grant, error)
}

// StaticPicker grants a folder chosen ahead of time, typically from
// configuration. An empty Dir denies.
type StaticPicker struct {
	Dir string
}

// PickDirectory implements DirectoryPicker
func (p StaticPicker) PickDirectory(ctx context.Context) (Grant, error) {
	if err := ctx.Err(); err != nil {
		return Grant{}, err
	}
	if p.Dir == "" {
		return Grant{}, nil
	}
	return Grant{URI: FileURI(p.Dir), Granted: true}, nil
}

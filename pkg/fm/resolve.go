package fm

import (
	"github.com/go-logr/logr"
	"github.com/logandonley/fontmatch/internal/platform"
)

// Resolver maps a selected candidate to the font file the platform loads
// for it.
type Resolver struct {
	faces platform.FaceResolver
	log   logr.Logger
}

func NewResolver(faces platform.FaceResolver, log logr.Logger) *Resolver {
	return &Resolver{faces: faces, log: log}
}

// Resolve asks the platform for the file backing c. The lookup is built
// from the candidate's own attributes, not from the request that selected
// it. Failures are returned as *ResolveError.
func (r *Resolver) Resolve(c Candidate) (string, error) {
	path, err := r.faces.ResolveFace(c.logFont())
	if err != nil {
		return "", &ResolveError{Face: c.FullNameOrFace(), Err: err}
	}
	r.log.V(1).Info("resolved font file", "font", c.FullNameOrFace(), "path", path)
	return path, nil
}

package tensor

import "github.com/pkg/errors"

// ErrShape reports incompatible tensor shapes in a primitive or a
// backward rule. Shape mismatches are fatal and surface immediately;
// no primitive broadcasts implicitly.
var ErrShape = errors.New("incompatible tensor shapes")

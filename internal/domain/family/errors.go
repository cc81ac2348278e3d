package family

import "errors"

var ErrFamilyNotFound = errors.New("family not found")

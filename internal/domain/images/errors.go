package images

import "errors"

var (
	ErrNoFile        = errors.New("no image file provided")
	ErrInvalidImage  = errors.New("file is not a supported image")
	ErrEmptyPublicID = errors.New("no image id provided")
	ErrImageNotFound = errors.New("image not found or already deleted")
)

package impl

import "errors"

var (
	ErrEmptyPassword        = errors.New("empty password")
	ErrStorageUnconfigured  = errors.New("image storage not configured")
	ErrUnsupportedImageType = errors.New("unsupported image content type")
)

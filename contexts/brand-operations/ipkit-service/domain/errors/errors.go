package errors

import "errors"

var (
	ErrIPKitNotFound     = errors.New("ip kit not found")
	ErrAssetNotFound     = errors.New("brand asset not found")
	ErrInvalidKitInput   = errors.New("invalid ip kit input")
	ErrInvalidAssetInput = errors.New("invalid brand asset input")
	ErrKitPublished      = errors.New("published ip kit cannot be modified")
	ErrUnauthenticated   = errors.New("caller identity is missing")
	ErrNotBrandOwner     = errors.New("caller does not manage this brand")
)

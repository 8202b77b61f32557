package settings

import "errors"

var (
	ErrSettingsNotFound = errors.New("settings not found")
	ErrInvalidMode      = errors.New("invalid compensation mode")
)

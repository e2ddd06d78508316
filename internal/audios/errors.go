package audios

import "errors"

var ErrNotFound = errors.New("audio not found")

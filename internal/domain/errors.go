package domain

import "errors"

var ErrUnknownTool = errors.New("unknown tool")

package commons

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrStaleRecord = errors.New("Record changed since it was read")
var ErrDuplicateRecord = errors.New("Record already exists")

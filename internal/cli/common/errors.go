package common

import "github.com/kcutil/otpsweep/faults"

func ValidationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

func NotFoundError(message string, cause error) error {
	return faults.NewTypedError(faults.NotFoundError, message, cause)
}

func InternalError(message string, cause error) error {
	return faults.NewTypedError(faults.InternalError, message, cause)
}

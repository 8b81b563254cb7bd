package errors

import (
	"fmt"
)

// IntegrityError signals that the columns registry and the records diverged:
// a column is owned by the record type, but the attribute cannot be resolved on the record.
// It is a logic defect, not a bad input.
type IntegrityError struct {
	typeID    string
	attribute string
}

func NewIntegrityError(typeID, attribute string) IntegrityError {
	return IntegrityError{typeID: typeID, attribute: attribute}
}

func (IntegrityError) ErrorName() string {
	return "integrity"
}

func (IntegrityError) ExitCode() int {
	return ExitCodeIntegrity
}

func (e IntegrityError) TypeID() string {
	return e.typeID
}

func (e IntegrityError) Attribute() string {
	return e.attribute
}

func (e IntegrityError) Error() string {
	return fmt.Sprintf(`attribute "%s" is registered for the type "%s", but it cannot be resolved on the record`, e.attribute, e.typeID)
}

func (e IntegrityError) ErrorUserMessage() string {
	return fmt.Sprintf(`Internal error: attribute "%s" of the type "%s" cannot be resolved.`, e.attribute, e.typeID)
}

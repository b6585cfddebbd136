package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrIRNExists         = errors.New("industry number already registered")
	ErrEmptyImport       = errors.New("no rows found in the spreadsheet")
	ErrUnreadableImport  = errors.New("spreadsheet could not be parsed")
	ErrUnknownFieldName  = errors.New("unknown employee field")
	ErrImmutableField    = errors.New("field cannot be edited")
)

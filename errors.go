package pallet

import "fmt"

type TooManyComponentTypesError struct {
	Limit int
}

func (e TooManyComponentTypesError) Error() string {
	return fmt.Sprintf("maximum number of component types reached (%d)", e.Limit)
}

type ComponentExistsError struct {
	Name   string
	Entity EntityID
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("component %s already exists on entity %d", e.Name, e.Entity)
}

type ComponentNotFoundError struct {
	Name   string
	Entity EntityID
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component %s does not exist on entity %d", e.Name, e.Entity)
}

type EntityNotFoundError struct {
	Entity EntityID
}

func (e EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity %d does not exist", e.Entity)
}

type InvalidEntityCountError struct {
	Count int
}

func (e InvalidEntityCountError) Error() string {
	return fmt.Sprintf("invalid entity count: %d", e.Count)
}

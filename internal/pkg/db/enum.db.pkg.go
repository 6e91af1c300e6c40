package database

import "strings"

// DirectionEnum is the sort direction of a created_at listing.
type DirectionEnum string

const (
	ASC  DirectionEnum = "asc"
	DESC DirectionEnum = "desc"
)

func (e DirectionEnum) IsValid() bool {
	return e == ASC || e == DESC
}

// OrderBy renders an ORDER BY clause for column, ascending when e is unknown.
func (e DirectionEnum) OrderBy(column string) string {
	dir := DirectionEnum(strings.ToLower(strings.TrimSpace(string(e))))
	if !dir.IsValid() {
		dir = ASC
	}
	return column + " " + string(dir)
}

type DriverEnum string

const (
	POSTGRES DriverEnum = "postgres"
	MYSQL    DriverEnum = "mysql"
)

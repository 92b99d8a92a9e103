package models

import "time"

// EmployeeStatuses is the allow-list for Employee.Status.
var EmployeeStatuses = []string{"Active", "Inactive", "Leave", "Terminated"}

type Employee struct {
	ID        int64
	Name      string
	Title     *string
	Email     *string
	Phone     *string
	Status    string
	CreatedAt time.Time
}

package domain

import "time"

type Enrollment struct {
	ID        int64
	Name      string
	CPF       string
	Birthday  time.Time
	Phone     string
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Address   *Address
}

type Address struct {
	ID            int64
	CEP           string
	Street        string
	City          string
	State         string
	Number        string
	Neighborhood  string
	AddressDetail *string
	EnrollmentID  int64
}

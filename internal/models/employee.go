package models

import "time"

type Employee struct {
	UserID         int64     `json:"User_id"`
	Username       string    `json:"Username"`
	Email          *string   `json:"Email"`
	RoleID         *int      `json:"Role_id"`
	ClientID       *int64    `json:"Client_id"`
	BusinessName   *string   `json:"Business_name"`
	OwnerName      string    `json:"Owner_name"`
	Status         string    `json:"Status"`
	Submitted      time.Time `json:"Submitted"`
	BusinessPermit *string   `json:"Business_permit"`
	SPA            *string   `json:"SPA"`
	DTI            *string   `json:"DTI"`
}

// NewEmployee — регистрация/создание сотрудника вместе с клиентом и бизнесом.
type NewEmployee struct {
	Username     string
	Email        string
	PasswordHash string
	RoleID       int
	ClientID     *int64

	FullName     string
	FirstName    string
	MiddleName   *string
	LastName     string
	BusinessName string
	Location     string

	BusinessPermitFile *string
	DTIFile            *string
	SPAFile            *string
}

func (e *NewEmployee) WantsClient() bool {
	return e.FullName != "" || e.BusinessName != ""
}

func (e *NewEmployee) WantsBusiness() bool {
	return e.BusinessName != "" || e.Location != "" ||
		e.BusinessPermitFile != nil || e.DTIFile != nil || e.SPAFile != nil
}

type UpdateEmployee struct {
	UserID       int64
	Username     string
	Email        string
	PasswordHash *string
	RoleID       int
	ClientID     *int64
}

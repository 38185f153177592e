package models

import (
	"fmt"
	"strings"
)

const (
	ClientStatusActive   = 1
	ClientStatusInactive = 2
)

type Client struct {
	ID         int64   `json:"client_id"`
	FirstName  string  `json:"first_name"`
	MiddleName *string `json:"middle_name"`
	LastName   string  `json:"last_name"`
	Email      *string `json:"email"`
	StatusID   *int    `json:"status_id"`
}

// StatusLabel переводит status_id в подпись для админки.
func StatusLabel(status *int) string {
	switch {
	case status == nil:
		return "Pending"
	case *status == ClientStatusActive:
		return "Active"
	case *status == ClientStatusInactive:
		return "Inactive"
	default:
		return fmt.Sprintf("Status #%d", *status)
	}
}

// FullName склеивает ФИО, пропуская пустые части.
func FullName(first string, middle *string, last string) string {
	parts := []string{strings.TrimSpace(first)}
	if middle != nil && strings.TrimSpace(*middle) != "" {
		parts = append(parts, strings.TrimSpace(*middle))
	}
	parts = append(parts, strings.TrimSpace(last))
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// SplitName делит "Имя Отчество Фамилия": первое слово — имя, последнее —
// фамилия, всё между ними — отчество.
func SplitName(full string) (first string, middle *string, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", nil, ""
	}
	first = parts[0]
	parts = parts[1:]
	if len(parts) == 0 {
		return first, nil, ""
	}
	last = parts[len(parts)-1]
	parts = parts[:len(parts)-1]
	if len(parts) > 0 {
		m := strings.Join(parts, " ")
		middle = &m
	}
	return first, middle, last
}

// ApprovalTarget — данные для одобрения клиента и письма.
type ApprovalTarget struct {
	UserID      int64
	Username    string
	UserEmail   *string
	ClientID    *int64
	ClientEmail *string
	FirstName   *string
	MiddleName  *string
	LastName    *string
	StatusID    *int
}

// Recipient: email клиента в приоритете, затем email пользователя.
func (a *ApprovalTarget) Recipient() string {
	if a.ClientEmail != nil && strings.TrimSpace(*a.ClientEmail) != "" {
		return strings.TrimSpace(*a.ClientEmail)
	}
	if a.UserEmail != nil {
		return strings.TrimSpace(*a.UserEmail)
	}
	return ""
}

func (a *ApprovalTarget) DisplayName() string {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	name := FullName(deref(a.FirstName), a.MiddleName, deref(a.LastName))
	if name == "" {
		return a.Username
	}
	return name
}

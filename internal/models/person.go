package models

import "strings"

type Role string

const (
	Admin  Role = "admin"
	Coach  Role = "coach"
	Player Role = "player"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInjured  Status = "injured"
	StatusInactive Status = "inactive"
)

// RolesSeparator — разделитель при склейке ролей в строку.
// Используется только на границе форматирования; внутри роли живут срезом.
const RolesSeparator = ", "

// Person — запись ростера: игрок, тренер или админ (роли не взаимоисключающие).
type Person struct {
	ID         int64
	Name       string
	Surname    string
	Middlename *string
	Number     *string
	TGUsername *string
	TGID       *int64
	PositionID *int64
	Position   *string
	Status     Status
	Roles      []string
}

func (p *Person) HasRole(role Role) bool {
	for _, r := range p.Roles {
		if strings.TrimSpace(r) == string(role) {
			return true
		}
	}
	return false
}

func (p *Person) RolesJoined() string {
	return strings.Join(p.Roles, RolesSeparator)
}

func (p *Person) FullName() string {
	return strings.TrimSpace(p.Name + " " + p.Surname)
}

type Position struct {
	ID   int64
	Name string
}

// ChatRoute — куда отправлять опросы: чат (и опционально топик),
// либо привязанный к позиции, либо просто именованный чат для ручного выбора.
type ChatRoute struct {
	ID         int64
	ChatID     int64
	ThreadID   *int64
	PositionID *int64
	Name       string
}

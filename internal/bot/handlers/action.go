package handlers

import (
	"strconv"
	"strings"

	"github.com/teamops/football-team-bot/internal/models"
)

// Action — разобранный payload inline-кнопки. Разбор делается один раз на
// границе диспетчера; дальше визарды матчатся по типам, а не по префиксам строк.
type Action interface{ action() }

type (
	ActCancel  struct{}
	ActSkip    struct{}
	ActBack    struct{}
	ActSave    struct{}
	ActConfirm struct{ Yes bool }
	ActNotify  struct{ Yes bool }
	// ActSelectRole — выбор ролей в визарде добавления: игрок, тренер или оба.
	ActSelectRole struct{ Player, Coach bool }
	ActSelectPosition struct{ ID int64 }
	ActSelectStatus   struct{ Status models.Status }
	ActSelectChat     struct{ ID int64 }
	ActEditField      struct{ Field string }
)

func (ActCancel) action()         {}
func (ActSkip) action()           {}
func (ActBack) action()           {}
func (ActSave) action()           {}
func (ActConfirm) action()        {}
func (ActNotify) action()         {}
func (ActSelectRole) action()     {}
func (ActSelectPosition) action() {}
func (ActSelectStatus) action()   {}
func (ActSelectChat) action()     {}
func (ActEditField) action()      {}

// editableFields — поля, доступные в меню визарда редактирования.
var editableFields = map[string]bool{
	"name":        true,
	"surname":     true,
	"middlename":  true,
	"number":      true,
	"tg_username": true,
	"status":      true,
	"position":    true,
}

// DecodeAction разбирает callback data. Непонятный payload — (nil, false):
// скорее всего кнопка от «протухшего» сообщения.
func DecodeAction(data string) (Action, bool) {
	switch data {
	case "cancel":
		return ActCancel{}, true
	case "skip":
		return ActSkip{}, true
	case "back":
		return ActBack{}, true
	case "save":
		return ActSave{}, true
	case "confirm:yes":
		return ActConfirm{Yes: true}, true
	case "confirm:no":
		return ActConfirm{Yes: false}, true
	case "notify:yes":
		return ActNotify{Yes: true}, true
	case "notify:no":
		return ActNotify{Yes: false}, true
	case "role:player":
		return ActSelectRole{Player: true}, true
	case "role:coach":
		return ActSelectRole{Coach: true}, true
	case "role:both":
		return ActSelectRole{Player: true, Coach: true}, true
	}

	if rest, ok := strings.CutPrefix(data, "position:"); ok {
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return nil, false
		}
		return ActSelectPosition{ID: id}, true
	}
	if rest, ok := strings.CutPrefix(data, "chat:"); ok {
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return nil, false
		}
		return ActSelectChat{ID: id}, true
	}
	if rest, ok := strings.CutPrefix(data, "status:"); ok {
		switch models.Status(rest) {
		case models.StatusActive, models.StatusInjured, models.StatusInactive:
			return ActSelectStatus{Status: models.Status(rest)}, true
		}
		return nil, false
	}
	if rest, ok := strings.CutPrefix(data, "edit:"); ok {
		if editableFields[rest] {
			return ActEditField{Field: rest}, true
		}
		return nil, false
	}
	return nil, false
}

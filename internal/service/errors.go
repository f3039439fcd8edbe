package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidShipment    = errors.New("shipment payload invalid")
	ErrInvalidAddress     = errors.New("address payload invalid")
	ErrInvalidArticle     = errors.New("article payload invalid")
	ErrProtected          = errors.New("resource is referenced and cannot be deleted")
	ErrNotTrashed         = errors.New("resource is not trashed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password too short")
)

func mapRecordNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

package model

import (
	"github.com/rs/xid"
)

type CategoryID string

func NewCategoryID() CategoryID {
	return CategoryID(xid.New().String())
}

type Category interface {
	WithID[CategoryID]

	Label() string
}

type PersistedCategory interface {
	Category
	WithLifecycle
}

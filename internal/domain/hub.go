package domain

import (
	"context"
)

type HubUseCase interface {
	Create() (GameUseCase, error)
	Get(id string) (GameUseCase, error)
	IDs() []string
	RemoveFinished() int
	Run(ctx context.Context) error
	Close()
}

package response

import (
	"tour-booking/pkg/utils"
)

// PaginatedResponse pairs a page of items with the envelope meta.
type PaginatedResponse[T any] struct {
	Data []T
	Meta *utils.Meta
}

func NewPaginatedResponse[T any](data []T, page, limit int, total int64) *PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}
	return &PaginatedResponse[T]{
		Data: data,
		Meta: utils.NewMeta(total, page, limit),
	}
}

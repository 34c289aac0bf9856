package domain

import "encoding/json"

// OrderHistory — документ истории заказов одного покупателя.
// History хранит заказы в порядке поступления в хранилище;
// сами заказы — непрозрачные JSON-объекты, переданные клиентом.
type OrderHistory struct {
	Name    string            `json:"name"`
	History []json.RawMessage `json:"history"`
}

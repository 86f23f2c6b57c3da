package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrItemNotFound      = errors.New("artículo no encontrado en inventario")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrDuplicateItem     = errors.New("el artículo ya existe en inventario")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrAlreadyResolved   = errors.New("la solicitud ya fue resuelta")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrOverPosting       = errors.New("la cantidad excede lo ordenado en la línea de compra")
)

// InsufficientStockError lleva el detalle disponible/solicitado para el actor.
// errors.Is(err, ErrInsufficientStock) sigue funcionando.
type InsufficientStockError struct {
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// OverPostingError lleva el detalle ordenado/ya recibido/intentado de la línea de compra.
type OverPostingError struct {
	Ordered   int64
	Posted    int64
	Attempted int64
}

func (e *OverPostingError) Error() string {
	return fmt.Sprintf("sobre-recepción: ordenado %d, recibido %d, intento %d", e.Ordered, e.Posted, e.Attempted)
}

func (e *OverPostingError) Is(target error) bool {
	return target == ErrOverPosting
}

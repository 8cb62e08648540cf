package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound : la ressource demandée n'existe pas.
	ErrNotFound = errors.New("ressource introuvable")

	// ErrEmptyCart : checkout refusé sur un panier vide.
	ErrEmptyCart = errors.New("le panier est vide")

	// ErrForbidden : l'appelant n'est ni propriétaire ni admin.
	ErrForbidden = errors.New("opération non autorisée")
)

// InvalidStateError signale une transition interdite depuis le statut courant.
type InvalidStateError struct {
	Current string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("transition impossible depuis le statut '%s'", e.Current)
}

// ValidationError porte un message de règle métier destiné au client (400).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

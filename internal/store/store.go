package store

import "errors"

// ErrNotFound est renvoyé par tous les stores quand aucun enregistrement
// ne correspond. Les handlers le traduisent en 404.
var ErrNotFound = errors.New("enregistrement introuvable")

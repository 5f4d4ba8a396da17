// Package components holds the films page: the film table, the
// characters cell and the character name leaf, each a routable component.
package components

import "github.com/pthm/swfilms"

// Set holds the component instances of one application.
type Set struct {
	Films          *Films
	CharactersCell *CharactersCell
	CharacterName  *CharacterName
}

// Options configures Init.
type Options struct {
	// ShowCharacterNames replaces the character count with the names.
	ShowCharacterNames bool
}

// Init creates all components and registers them with reg.
// Call this once at application startup before handling requests.
func Init(reg *swfilms.Registry, opts Options) *Set {
	s := &Set{}
	s.CharacterName = NewCharacterName()
	s.CharactersCell = NewCharactersCell(s.CharacterName)
	s.Films = NewFilms(s.CharactersCell, opts.ShowCharacterNames)

	reg.Add(s.Films, s.CharactersCell, s.CharacterName)
	return s
}

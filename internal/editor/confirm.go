package editor

import "fmt"

// Answer is a reply to a yes/no/cancel question.
type Answer int

const (
	Cancel Answer = iota
	Yes
	No
)

func (a Answer) String() string {
	switch a {
	case Yes:
		return "yes"
	case No:
		return "no"
	}
	return "cancel"
}

// Confirmer asks the user a question.
type Confirmer interface {
	Confirm(question string) Answer
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(question string) Answer

// Confirm calls f.
func (f ConfirmFunc) Confirm(question string) Answer { return f(question) }

// Quit decides whether the editor may close. With unsaved changes it asks c
// whether to save first. It returns false when the user cancels or the save
// fails.
func (s *Session) Quit(c Confirmer) (bool, error) {
	if !s.doc.Dirty() {
		s.logAction("closed app")
		return true, nil
	}
	switch c.Confirm(fmt.Sprintf("Save changes to %s before closing?", s.doc.Name())) {
	case Yes:
		if err := s.Save(); err != nil {
			return false, err
		}
		s.logAction("closed app")
		return true, nil
	case No:
		s.logAction("closed app without saving")
		return true, nil
	}
	return false, nil
}

package session

import (
	"github.com/hourboard/dashboard-api/pkg/clients"
	"github.com/hourboard/dashboard-api/pkg/domain"
)

// Client repository operations routed through the session so every
// mutation lands in the notification ring and missing-entity failures
// follow the absorb-and-notify policy.

func (s *Session) Clients() []domain.Client {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return s.clients.List()
}

func (s *Session) Client(id string) (*domain.Client, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return s.clients.Get(id)
}

func (s *Session) CreateClient(params clients.CreateParams) (*domain.Client, error) {
	s.mx.Lock()
	client, err := s.clients.Create(params)
	s.mx.Unlock()
	if err != nil {
		s.notifyError(err.Error())
		return nil, err
	}
	s.notifySuccess("Client " + client.Name + " created")
	return client, nil
}

func (s *Session) UpdateClient(id string, changes domain.Client) (*domain.Client, error) {
	s.mx.Lock()
	client, err := s.clients.Update(id, changes)
	s.mx.Unlock()
	if err != nil {
		s.notifyError(err.Error())
		return nil, err
	}
	s.notifySuccess("Client " + client.Name + " updated")
	return client, nil
}

func (s *Session) DeleteClient(id string) error {
	s.mx.Lock()
	err := s.clients.Delete(id)
	s.mx.Unlock()
	if err != nil {
		s.notifyError(err.Error())
		return err
	}
	s.notifySuccess("Client deleted")
	return nil
}

func (s *Session) Contacts(clientID string) ([]domain.Contact, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return s.clients.Contacts(clientID)
}

func (s *Session) AddContact(clientID string, contact domain.Contact) error {
	s.mx.Lock()
	err := s.clients.AddContact(clientID, contact)
	s.mx.Unlock()
	if err != nil {
		s.notifyError(err.Error())
		return err
	}
	s.notifySuccess("Contact added")
	return nil
}

func (s *Session) UpdateContact(clientID string, index int, contact domain.Contact) error {
	s.mx.Lock()
	err := s.clients.UpdateContact(clientID, index, contact)
	s.mx.Unlock()
	if err != nil {
		s.notifyError(err.Error())
		return err
	}
	s.notifySuccess("Contact updated")
	return nil
}

func (s *Session) DeleteContact(clientID string, index int) error {
	s.mx.Lock()
	err := s.clients.DeleteContact(clientID, index)
	s.mx.Unlock()
	if err != nil {
		s.notifyError(err.Error())
		return err
	}
	s.notifySuccess("Contact removed")
	return nil
}

func (s *Session) Projects(clientID string) ([]domain.Project, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return s.clients.Projects(clientID)
}

func (s *Session) AddProject(clientID string, project domain.Project) (*domain.Project, error) {
	s.mx.Lock()
	created, err := s.clients.AddProject(clientID, project)
	s.mx.Unlock()
	if err != nil {
		s.notifyError(err.Error())
		return nil, err
	}
	s.notifySuccess("Project " + created.Name + " added")
	return created, nil
}

func (s *Session) UpdateProject(clientID, projectID string, changes domain.Project) error {
	s.mx.Lock()
	err := s.clients.UpdateProject(clientID, projectID, changes)
	s.mx.Unlock()
	if err != nil {
		s.notifyError(err.Error())
		return err
	}
	s.notifySuccess("Project updated")
	return nil
}

func (s *Session) DeleteProject(clientID, projectID string) error {
	s.mx.Lock()
	err := s.clients.DeleteProject(clientID, projectID)
	s.mx.Unlock()
	if err != nil {
		s.notifyError(err.Error())
		return err
	}
	s.notifySuccess("Project removed")
	return nil
}

func (s *Session) Notes(clientID string) ([]domain.Note, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return s.clients.Notes(clientID)
}

func (s *Session) AddNote(clientID string, note domain.Note) error {
	s.mx.Lock()
	err := s.clients.AddNote(clientID, note)
	s.mx.Unlock()
	if err != nil {
		s.notifyError(err.Error())
		return err
	}
	s.notifySuccess("Note added")
	return nil
}

func (s *Session) DeleteNote(clientID string, index int) error {
	s.mx.Lock()
	err := s.clients.DeleteNote(clientID, index)
	s.mx.Unlock()
	if err != nil {
		s.notifyError(err.Error())
		return err
	}
	s.notifySuccess("Note removed")
	return nil
}

func (s *Session) Billing(clientID string) (*domain.BillingProfile, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return s.clients.Billing(clientID)
}

func (s *Session) UpdateBilling(clientID string, profile domain.BillingProfile) error {
	s.mx.Lock()
	err := s.clients.UpdateBilling(clientID, profile)
	s.mx.Unlock()
	if err != nil {
		s.notifyError(err.Error())
		return err
	}
	s.notifySuccess("Billing profile updated")
	return nil
}

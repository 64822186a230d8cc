package session

import (
	"sync"

	gouuid "github.com/nu7hatch/gouuid"

	"github.com/hourboard/dashboard-api/pkg/tracker"
)

// Store owns the live sessions of this process, keyed by session id.
// Sessions start on a successful token check and end on logout.
type Store struct {
	apiUrl string

	mx       sync.Mutex
	sessions map[string]*Session
}

func NewStore(apiUrl string) *Store {
	return &Store{
		apiUrl:   apiUrl,
		sessions: map[string]*Session{},
	}
}

// Create verifies the bearer token against the tracker and opens a fresh
// session for it. The bad-token case returns
// tracker.ErrAuthenticationFailed untouched.
func (s *Store) Create(authToken string) (*Session, error) {
	api := tracker.NewApiClient(s.apiUrl).WithAuthToken(authToken)
	user, err := api.GetCurrentUser()
	if err != nil {
		return nil, err
	}

	u4, err := gouuid.NewV4()
	if err != nil {
		return nil, err
	}

	sess := newSession(u4.String(), api, user)

	s.mx.Lock()
	s.sessions[sess.ID] = sess
	s.mx.Unlock()
	return sess, nil
}

func (s *Store) Get(id string) *Session {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.sessions[id]
}

// Destroy tears the session down; its cache and notifications go with it.
func (s *Store) Destroy(id string) {
	s.mx.Lock()
	defer s.mx.Unlock()
	delete(s.sessions, id)
}

func (s *Store) Count() int {
	s.mx.Lock()
	defer s.mx.Unlock()
	return len(s.sessions)
}

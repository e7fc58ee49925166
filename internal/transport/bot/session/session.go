// Package session хранит состояние админки и печенья для каждого чата.
package session

import (
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"fortune_cookie/internal/domain/service/fortune"
	"fortune_cookie/internal/domain/service/phraselist"
)

type Session struct {
	Phrases *phraselist.Controller
	Cookie  *fortune.Widget
}

// Store — сессии в памяти с вытеснением по неактивности.
type Store struct {
	cache   *cache.Cache
	factory func() *Session

	mu sync.Mutex
}

func NewStore(ttl time.Duration, factory func() *Session) *Store {
	return &Store{
		cache:   cache.New(ttl, 2*ttl),
		factory: factory,
	}
}

// Get возвращает сессию чата, создавая её при первом обращении.
// Каждое обращение продлевает жизнь сессии.
func (s *Store) Get(chatID int64) *Session {
	key := strconv.FormatInt(chatID, 10)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.cache.Get(key)
	if !ok {
		sess = s.factory()
	}

	s.cache.SetDefault(key, sess)

	return sess.(*Session) //nolint:forcetypeassert
}

func (s *Store) Len() int {
	return s.cache.ItemCount()
}

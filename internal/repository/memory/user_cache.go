package memory

import (
	"time"

	"realtime-chat-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// UserCache keeps recently fetched user records in memory so presence
// broadcasts and profile lookups do not hit the store on every event.
// The presence tracker invalidates an entry whenever the online flag flips.
type UserCache struct {
	cache *cache.Cache
}

func NewUserCache() *UserCache {
	// Short default expiration; entries are also invalidated explicitly on
	// presence changes.
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &UserCache{
		cache: c,
	}
}

func (r *UserCache) Set(user *entity.User) {
	r.cache.Set(user.Id.String(), user, cache.DefaultExpiration)
}

func (r *UserCache) Get(id uuid.UUID) (*entity.User, bool) {
	if x, found := r.cache.Get(id.String()); found {
		return x.(*entity.User), true
	}
	return nil, false
}

func (r *UserCache) Invalidate(id uuid.UUID) {
	r.cache.Delete(id.String())
}

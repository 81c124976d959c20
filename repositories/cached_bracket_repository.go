package repositories

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/Dosada05/tournament-bracket/models"
)

const bracketCacheTTL = 10 * time.Minute

// CachedBracketRepository is a read-through LRU in front of another
// BracketRepository. Concurrent misses for the same tournament share one
// load, and a caller that gives up does not cancel it for the others. Entries are replaced on Save, so the cache is only coherent when
// every write in the process goes through it.
type CachedBracketRepository struct {
	next  BracketRepository
	cache *lru.LRU[string, *models.Bracket]
	group singleflight.Group
}

func NewCachedBracketRepository(next BracketRepository, size int) *CachedBracketRepository {
	if size <= 0 {
		size = 256
	}
	return &CachedBracketRepository{
		next:  next,
		cache: lru.NewLRU[string, *models.Bracket](size, nil, bracketCacheTTL),
	}
}

func (r *CachedBracketRepository) GetByTournamentID(ctx context.Context, tournamentID string) (*models.Bracket, error) {
	if b, ok := r.cache.Get(tournamentID); ok {
		return b.Clone(), nil
	}

	// The load is shared by every waiter, so it must outlive the caller that
	// started it.
	loadCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(tournamentID, func() (interface{}, error) {
		b, err := r.next.GetByTournamentID(loadCtx, tournamentID)
		if err != nil {
			return nil, err
		}
		r.cache.Add(tournamentID, b)
		return b, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.Bracket).Clone(), nil
	}
}

func (r *CachedBracketRepository) Save(ctx context.Context, b *models.Bracket) error {
	if err := r.next.Save(ctx, b); err != nil {
		r.cache.Remove(b.TournamentID)
		return err
	}
	r.cache.Add(b.TournamentID, b.Clone())
	return nil
}

// Invalidate drops the cached copy of a tournament's bracket.
func (r *CachedBracketRepository) Invalidate(tournamentID string) {
	r.cache.Remove(tournamentID)
}

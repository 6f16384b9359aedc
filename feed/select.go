package feed

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

const (
	likeNoise       = 10
	timestampJitter = 2 * time.Hour
	// minDiverse is how many posts are admitted before the one-per-category
	// rule kicks in.
	minDiverse = 3
)

// SelectedPost is one selection cycle's view of a Post.
type SelectedPost struct {
	Post
	Likes     int       `json:"likes"`
	Timestamp time.Time `json:"timestamp"`
	AgeLabel  string    `json:"age_label"`
}

// SelectFresh derives a display set of at most maxCount posts from pool.
// Posts are ordered by priority, then newest first; the first pass prefers
// categories not yet shown, the second pass fills any remaining slots.
// rng and now drive the like noise, timestamp jitter and age labels.
func SelectFresh(pool []Post, maxCount int, rng *rand.Rand, now time.Time) []SelectedPost {
	if maxCount <= 0 || len(pool) == 0 {
		return nil
	}

	derived := make([]SelectedPost, len(pool))
	for i, p := range pool {
		derived[i] = derive(p, rng, now)
	}
	sort.SliceStable(derived, func(i, j int) bool {
		if derived[i].Priority != derived[j].Priority {
			return derived[i].Priority < derived[j].Priority
		}
		return derived[i].Timestamp.After(derived[j].Timestamp)
	})

	selected := make([]SelectedPost, 0, maxCount)
	taken := make(map[string]bool, maxCount)
	categories := make(map[string]bool)
	for _, p := range derived {
		if len(selected) >= maxCount {
			break
		}
		if taken[p.ID] {
			continue
		}
		if !categories[p.Category] || len(selected) < minDiverse {
			selected = append(selected, p)
			taken[p.ID] = true
			categories[p.Category] = true
		}
	}
	for _, p := range derived {
		if len(selected) >= maxCount {
			break
		}
		if !taken[p.ID] {
			selected = append(selected, p)
			taken[p.ID] = true
		}
	}
	return selected
}

func derive(p Post, rng *rand.Rand, now time.Time) SelectedPost {
	likes := p.Display.LikeBaseline + rng.Intn(2*likeNoise+1) - likeNoise
	if likes < 1 {
		likes = 1
	}
	ts := p.BasePublished.Add(time.Duration(rng.Int63n(int64(timestampJitter))))
	return SelectedPost{
		Post:      p,
		Likes:     likes,
		Timestamp: ts,
		AgeLabel:  AgeLabel(now, ts),
	}
}

// AgeLabel renders the distance between ts and now in the feed's banded
// style: "5M AGO", "3H AGO", "1 DAY AGO", "4 DAYS AGO", "1 WEEK AGO",
// "3 WEEKS AGO".
func AgeLabel(now, ts time.Time) string {
	diff := now.Sub(ts)
	days := int(diff / (24 * time.Hour))
	hours := int(diff / time.Hour)
	minutes := int(diff / time.Minute)

	switch {
	case days > 0:
		switch {
		case days == 1:
			return "1 DAY AGO"
		case days < 7:
			return fmt.Sprintf("%d DAYS AGO", days)
		case days < 14:
			return "1 WEEK AGO"
		default:
			return fmt.Sprintf("%d WEEKS AGO", days/7)
		}
	case hours > 0:
		return fmt.Sprintf("%dH AGO", hours)
	default:
		if minutes < 1 {
			minutes = 1
		}
		return fmt.Sprintf("%dM AGO", minutes)
	}
}

package directory

import (
	"github.com/devtna/jlsfinder/core/review"
	"github.com/devtna/jlsfinder/core/school"
	"github.com/devtna/jlsfinder/core/user"
	"github.com/devtna/jlsfinder/storage"
)

func (s *Store) consume(events <-chan storage.Event) {
	for ev := range events {
		s.apply(ev)
	}
}

// apply reconciles one realtime event into the in-memory collections:
//   - INSERT is ignored when a record with that id already exists, which
//     makes it idempotent against duplicate delivery and against a delivery
//     racing the optimistic local insert;
//   - UPDATE replaces the record with the matching id;
//   - DELETE removes the record with the matching id.
//
// Events are applied in delivery order. No sequence numbers are tracked,
// so an update arriving after the delete it preceded on the backend will
// resurrect the row; that is an accepted best-effort limitation.
func (s *Store) apply(ev storage.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Table {
	case storage.TableSchools:
		s.schools = applySchool(s.schools, ev)
	case storage.TableUsers:
		s.users = applyUser(s.users, ev)
	case storage.TableReviews:
		s.reviews = applyReview(s.reviews, ev)
	default:
		s.log.Warn("ignoring change event for unknown table", string(ev.Table))
	}
}

func applySchool(schools []school.School, ev storage.Event) []school.School {
	switch ev.Op {
	case storage.OpInsert:
		row, ok := ev.Row.(*school.School)
		if !ok {
			return schools
		}
		for _, sc := range schools {
			if sc.ID == row.ID {
				return schools
			}
		}
		return append(schools, *row)
	case storage.OpUpdate:
		row, ok := ev.Row.(*school.School)
		if !ok {
			return schools
		}
		for i := range schools {
			if schools[i].ID == row.ID {
				schools[i] = *row
			}
		}
		return schools
	case storage.OpDelete:
		kept := schools[:0]
		for _, sc := range schools {
			if sc.ID != ev.RowID {
				kept = append(kept, sc)
			}
		}
		return kept
	}
	return schools
}

func applyUser(users []user.User, ev storage.Event) []user.User {
	switch ev.Op {
	case storage.OpInsert:
		row, ok := ev.Row.(*user.User)
		if !ok {
			return users
		}
		for _, u := range users {
			if u.ID == row.ID {
				return users
			}
		}
		return append(users, *row)
	case storage.OpUpdate:
		row, ok := ev.Row.(*user.User)
		if !ok {
			return users
		}
		for i := range users {
			if users[i].ID == row.ID {
				users[i] = *row
			}
		}
		return users
	case storage.OpDelete:
		kept := users[:0]
		for _, u := range users {
			if u.ID != ev.RowID {
				kept = append(kept, u)
			}
		}
		return kept
	}
	return users
}

func applyReview(reviews []review.Review, ev storage.Event) []review.Review {
	switch ev.Op {
	case storage.OpInsert:
		row, ok := ev.Row.(*review.Review)
		if !ok {
			return reviews
		}
		for _, r := range reviews {
			if r.ID == row.ID {
				return reviews
			}
		}
		return append(reviews, *row)
	case storage.OpUpdate:
		row, ok := ev.Row.(*review.Review)
		if !ok {
			return reviews
		}
		for i := range reviews {
			if reviews[i].ID == row.ID {
				reviews[i] = *row
			}
		}
		return reviews
	case storage.OpDelete:
		kept := reviews[:0]
		for _, r := range reviews {
			if r.ID != ev.RowID {
				kept = append(kept, r)
			}
		}
		return kept
	}
	return reviews
}
